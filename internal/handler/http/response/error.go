package response

import (
	"errors"
	"net/http"

	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/company"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee has already checked in today")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record is already checked out")
	case errors.Is(err, attendance.ErrWorkDateChangeNotAllowed):
		Conflict(w, "Work date of an attendance record cannot be changed")
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, "Check-out time must not be before check-in time", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
