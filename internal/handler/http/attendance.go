package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListByCompany(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// dateRangeFromQuery reads the optional from/to query parameters.
func dateRangeFromQuery(r *http.Request) attendance.DateRangeFilter {
	var filter attendance.DateRangeFilter
	if from := r.URL.Query().Get("from"); from != "" {
		filter.FromDate = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		filter.ToDate = &to
	}
	return filter
}

// CheckIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Check-in decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	rec, err := a.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("Failed to check in", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", rec)
}

// Create implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	rec, err := a.attendanceService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create attendance record", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created successfully", rec)
}

// Update implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "attendanceID")

	if err := a.attendanceService.Update(r.Context(), req); err != nil {
		slog.Error("Failed to update attendance record", "error", err, "id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated successfully", nil)
}

// CheckOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Check-out decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "attendanceID")

	rec, err := a.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		slog.Error("Failed to check out", "error", err, "id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", rec)
}

// Delete implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "attendanceID")

	if err := a.attendanceService.Delete(r.Context(), attendanceID); err != nil {
		slog.Error("Failed to delete attendance record", "error", err, "id", attendanceID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted successfully", nil)
}

// GetByID implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "attendanceID")

	rec, err := a.attendanceService.GetByID(r.Context(), attendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rec)
}

// ListByEmployee implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	filter := dateRangeFromQuery(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := a.attendanceService.ListByEmployee(r.Context(), employeeID, filter)
	if err != nil {
		slog.Error("Failed to list employee attendance", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListByCompany implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListByCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	filter := dateRangeFromQuery(r)

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := a.attendanceService.ListByCompany(r.Context(), companyID, filter)
	if err != nil {
		slog.Error("Failed to list company attendance", "error", err, "company_id", companyID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}
