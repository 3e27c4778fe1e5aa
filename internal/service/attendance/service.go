package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository

	workdayEnd time.Duration

	// now is injected so status derivation stays deterministic in tests.
	now func() time.Time
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// parseTimestamp parses an optional RFC3339 string into a UTC *time.Time.
func parseTimestamp(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		return nil, fmt.Errorf("invalid timestamp %q", *value)
	}
	utc := t.UTC()
	return &utc, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceRecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	nowUTC := s.now()
	workDate := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to check for existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceRecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	checkIn, err := parseTimestamp(req.CheckInUTC)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to parse check-in time: %w", err)
	}
	if checkIn == nil {
		checkIn = &nowUTC
	}

	rec := attendance.AttendanceRecord{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   req.EmployeeID,
		WorkDate:     workDate,
		CheckInUTC:   checkIn,
		Notes:        req.Notes,
		CreatedAtUTC: nowUTC,
	}
	rec.ApplyStatus(nowUTC, s.workdayEnd)

	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		// The existence check above is best effort; the storage uniqueness
		// constraint is the source of truth when two check-ins race.
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.AttendanceRecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	created.EmployeeName = &emp.Name
	return mapRecordToResponse(created), nil
}

// Create implements attendance.AttendanceService.
// Unlike CheckIn, the work date is explicit and may lie in the past (back-filling).
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceRecordResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to check for existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceRecordResponse{}, attendance.ErrDuplicateAttendance
	}

	nowUTC := s.now()

	checkIn, err := parseTimestamp(req.CheckInUTC)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to parse check-in time: %w", err)
	}
	if checkIn == nil {
		checkIn = &nowUTC
	}
	checkOut, err := parseTimestamp(req.CheckOutUTC)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to parse check-out time: %w", err)
	}

	rec := attendance.AttendanceRecord{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   req.EmployeeID,
		WorkDate:     workDate,
		CheckInUTC:   checkIn,
		CheckOutUTC:  checkOut,
		Notes:        req.Notes,
		CreatedAtUTC: nowUTC,
	}

	if !rec.HasValidTimeRange() {
		return attendance.AttendanceRecordResponse{}, attendance.ErrInvalidTimeRange
	}
	rec.ApplyStatus(nowUTC, s.workdayEnd)

	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return attendance.AttendanceRecordResponse{}, attendance.ErrDuplicateAttendance
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	created.EmployeeName = &emp.Name
	return mapRecordToResponse(created), nil
}

// Update implements attendance.AttendanceService.
// Replaces the mutable fields of an existing record; the work date is immutable.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	rec, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to get attendance record: %w", err)
	}

	workDate, _ := validator.IsValidDate(req.WorkDate)
	if !workDate.Equal(rec.WorkDate) {
		return attendance.ErrWorkDateChangeNotAllowed
	}

	checkIn, err := parseTimestamp(req.CheckInUTC)
	if err != nil {
		return fmt.Errorf("failed to parse check-in time: %w", err)
	}
	checkOut, err := parseTimestamp(req.CheckOutUTC)
	if err != nil {
		return fmt.Errorf("failed to parse check-out time: %w", err)
	}

	rec.CheckInUTC = checkIn
	rec.CheckOutUTC = checkOut
	rec.Notes = req.Notes

	if !rec.HasValidTimeRange() {
		return attendance.ErrInvalidTimeRange
	}
	rec.ApplyStatus(s.now(), s.workdayEnd)

	if err := s.AttendanceRepository.Update(ctx, rec); err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecordResponse{}, err
	}

	// Always re-read the persisted record here; checking out against a stale
	// view would silently drop a concurrent mutation.
	rec, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceRecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if rec.CheckOutUTC != nil {
		return attendance.AttendanceRecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut, err := parseTimestamp(&req.CheckOutUTC)
	if err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to parse check-out time: %w", err)
	}
	rec.CheckOutUTC = checkOut

	if req.Notes != nil && !validator.IsEmpty(*req.Notes) {
		rec.Notes = req.Notes
	}

	if !rec.HasValidTimeRange() {
		return attendance.AttendanceRecordResponse{}, attendance.ErrInvalidTimeRange
	}
	rec.ApplyStatus(s.now(), s.workdayEnd)

	if err := s.AttendanceRepository.Update(ctx, rec); err != nil {
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	return nil
}

// GetByID implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceRecordResponse, error) {
	rec, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceRecordResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return mapRecordToResponse(rec), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecordResponse, error) {
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	responses := make([]attendance.AttendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return responses, nil
}

// ListByCompany implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByCompany(ctx context.Context, companyID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecordResponse, error) {
	records, err := s.AttendanceRepository.ListByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list company attendance: %w", err)
	}

	responses := make([]attendance.AttendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	return responses, nil
}

// mapRecordToResponse converts an AttendanceRecord entity to its projection.
func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceRecordResponse {
	var employeeName string
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}

	return attendance.AttendanceRecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName,
		WorkDate:     rec.WorkDate.Format("2006-01-02"),
		CheckInUTC:   timePtrToString(rec.CheckInUTC),
		CheckOutUTC:  timePtrToString(rec.CheckOutUTC),
		Status:       string(rec.Status),
		Notes:        rec.Notes,
		CreatedAtUTC: rec.CreatedAtUTC.UTC().Format(time.RFC3339),
		UpdatedAtUTC: rec.UpdatedAtUTC.UTC().Format(time.RFC3339),
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	workdayEnd time.Duration,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		workdayEnd:           workdayEnd,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}
