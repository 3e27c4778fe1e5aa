package employee

import (
	"context"
)

type EmployeeRepository interface {
	// ListByCompany retrieves a company's employees ordered by name ascending
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// GetByID retrieves an employee by ID
	GetByID(ctx context.Context, id string) (Employee, error)

	// Create inserts a new employee
	Create(ctx context.Context, employee Employee) (Employee, error)

	// Update persists changes to an existing employee
	Update(ctx context.Context, employee Employee) error

	// Delete removes an employee by ID
	Delete(ctx context.Context, id string) error

	// DeleteByCompany removes every employee of a company.
	// Used by the company deletion cascade.
	DeleteByCompany(ctx context.Context, companyID string) error
}
