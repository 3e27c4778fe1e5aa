package attendance

import (
	"time"

	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/validator"
)

// MaxNotesLength bounds the free-text notes field.
const MaxNotesLength = 500

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest records a check-in for the current work date.
// CheckInUTC defaults to now when absent.
type CheckInRequest struct {
	EmployeeID string  `json:"-"`
	CheckInUTC *string `json:"check_in_utc,omitempty"` // RFC3339
	Notes      *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = appendIDErrors(errs, "employee_id", r.EmployeeID)
	errs = appendTimestampErrors(errs, "check_in_utc", r.CheckInUTC)
	errs = appendNotesErrors(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateAttendanceRequest creates a record for an explicit, possibly past,
// work date (back-filling). CheckInUTC defaults to now when absent.
type CreateAttendanceRequest struct {
	EmployeeID  string  `json:"-"`
	WorkDate    string  `json:"work_date"` // YYYY-MM-DD
	CheckInUTC  *string `json:"check_in_utc,omitempty"`
	CheckOutUTC *string `json:"check_out_utc,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = appendIDErrors(errs, "employee_id", r.EmployeeID)
	errs = appendWorkDateErrors(errs, r.WorkDate)
	errs = appendTimestampErrors(errs, "check_in_utc", r.CheckInUTC)
	errs = appendTimestampErrors(errs, "check_out_utc", r.CheckOutUTC)
	errs = appendRangeErrors(errs, r.CheckInUTC, r.CheckOutUTC)
	errs = appendNotesErrors(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest replaces the mutable fields of an existing record.
// The work date must match the stored one; changing it is rejected.
type UpdateAttendanceRequest struct {
	ID          string  `json:"-"`
	WorkDate    string  `json:"work_date"` // YYYY-MM-DD
	CheckInUTC  *string `json:"check_in_utc,omitempty"`
	CheckOutUTC *string `json:"check_out_utc,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = appendIDErrors(errs, "id", r.ID)
	errs = appendWorkDateErrors(errs, r.WorkDate)
	errs = appendTimestampErrors(errs, "check_in_utc", r.CheckInUTC)
	errs = appendTimestampErrors(errs, "check_out_utc", r.CheckOutUTC)
	errs = appendRangeErrors(errs, r.CheckInUTC, r.CheckOutUTC)
	errs = appendNotesErrors(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckOutRequest closes an open attendance record.
type CheckOutRequest struct {
	ID          string  `json:"-"`
	CheckOutUTC string  `json:"check_out_utc"` // RFC3339, required
	Notes       *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = appendIDErrors(errs, "id", r.ID)

	if validator.IsEmpty(r.CheckOutUTC) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_utc",
			Message: "check_out_utc is required",
		})
	} else {
		errs = appendTimestampErrors(errs, "check_out_utc", &r.CheckOutUTC)
	}

	errs = appendNotesErrors(errs, r.Notes)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DateRangeFilter bounds list queries by an inclusive work-date range.
type DateRangeFilter struct {
	FromDate *string `json:"from_date,omitempty"` // YYYY-MM-DD
	ToDate   *string `json:"to_date,omitempty"`   // YYYY-MM-DD
}

func (f *DateRangeFilter) Validate() error {
	var errs validator.ValidationErrors

	var from, to time.Time
	fromOK, toOK := false, false

	if f.FromDate != nil && *f.FromDate != "" {
		if from, fromOK = validator.IsValidDate(*f.FromDate); !fromOK {
			errs = append(errs, validator.ValidationError{
				Field:   "from",
				Message: "from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.ToDate != nil && *f.ToDate != "" {
		if to, toOK = validator.IsValidDate(*f.ToDate); !toOK {
			errs = append(errs, validator.ValidationError{
				Field:   "to",
				Message: "to must be in YYYY-MM-DD format",
			})
		}
	}

	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceRecordResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	WorkDate     string  `json:"work_date"`
	CheckInUTC   *string `json:"check_in_utc,omitempty"`
	CheckOutUTC  *string `json:"check_out_utc,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAtUTC string  `json:"created_at_utc"`
	UpdatedAtUTC string  `json:"updated_at_utc"`
}

// ========================================
// shared field rules
// ========================================

func appendIDErrors(errs validator.ValidationErrors, field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}
	if !validator.IsValidUUID(value) {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be a valid UUID",
		})
	}
	return errs
}

func appendWorkDateErrors(errs validator.ValidationErrors, workDate string) validator.ValidationErrors {
	if validator.IsEmpty(workDate) {
		return append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date is required",
		})
	}
	date, ok := validator.IsValidDate(workDate)
	if !ok {
		return append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}
	if date.After(time.Now().UTC()) {
		return append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date cannot be in the future",
		})
	}
	return errs
}

func appendTimestampErrors(errs validator.ValidationErrors, field string, value *string) validator.ValidationErrors {
	if value == nil || *value == "" {
		return errs
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be a valid RFC3339 timestamp",
		})
	}
	if t.After(time.Now().UTC()) {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " cannot be in the future",
		})
	}
	return errs
}

func appendRangeErrors(errs validator.ValidationErrors, checkIn, checkOut *string) validator.ValidationErrors {
	if checkIn == nil || *checkIn == "" || checkOut == nil || *checkOut == "" {
		return errs
	}
	in, inOK := validator.IsValidDateTime(*checkIn)
	out, outOK := validator.IsValidDateTime(*checkOut)
	if inOK && outOK && out.Before(in) {
		return append(errs, validator.ValidationError{
			Field:   "check_out_utc",
			Message: "check_out_utc must not be before check_in_utc",
		})
	}
	return errs
}

func appendNotesErrors(errs validator.ValidationErrors, notes *string) validator.ValidationErrors {
	if notes != nil && !validator.MaxLength(*notes, MaxNotesLength) {
		return append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}
	return errs
}
