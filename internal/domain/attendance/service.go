package attendance

import (
	"context"
)

type AttendanceService interface {
	// CheckIn creates a record for the employee's current work date
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceRecordResponse, error)

	// Create creates a record for an explicit work date (back-filling)
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceRecordResponse, error)

	// Update replaces the mutable fields of an existing record
	Update(ctx context.Context, req UpdateAttendanceRequest) error

	// CheckOut closes an open record
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceRecordResponse, error)

	// Delete removes a record
	Delete(ctx context.Context, id string) error

	// GetByID retrieves a single record
	GetByID(ctx context.Context, id string) (AttendanceRecordResponse, error)

	// ListByEmployee retrieves an employee's history, newest work date first
	ListByEmployee(ctx context.Context, employeeID string, filter DateRangeFilter) ([]AttendanceRecordResponse, error)

	// ListByCompany retrieves records across a company's employees
	ListByCompany(ctx context.Context, companyID string, filter DateRangeFilter) ([]AttendanceRecordResponse, error)
}
