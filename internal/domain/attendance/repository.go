package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The (employee_id, work_date) uniqueness constraint lives in storage; Create
// surfaces a violation as ErrDuplicateAttendance so a race that slips past the
// service-level existence check is still rejected at commit time.
type AttendanceRepository interface {
	// Create inserts a new attendance record
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByID retrieves a record by ID, joined with the employee name
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a specific
	// work date, or nil when none exists. Used to prevent double check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*AttendanceRecord, error)

	// ListByEmployee retrieves an employee's records, optionally bounded by an
	// inclusive work-date range, ordered by work date descending
	ListByEmployee(ctx context.Context, employeeID string, filter DateRangeFilter) ([]AttendanceRecord, error)

	// ListByCompany retrieves records for every employee of a company,
	// ordered by work date descending then employee name ascending
	ListByCompany(ctx context.Context, companyID string, filter DateRangeFilter) ([]AttendanceRecord, error)

	// Update persists changes to an existing record
	Update(ctx context.Context, record AttendanceRecord) error

	// Delete removes a record by ID
	Delete(ctx context.Context, id string) error

	// DeleteByCompany removes every record belonging to a company's employees.
	// Used by the company deletion cascade.
	DeleteByCompany(ctx context.Context, companyID string) error
}
