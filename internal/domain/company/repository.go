package company

import (
	"context"
)

type CompanyRepository interface {
	// List retrieves all companies ordered by name ascending
	List(ctx context.Context) ([]Company, error)

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id string) (Company, error)

	// Create inserts a new company
	Create(ctx context.Context, company Company) (Company, error)

	// Update persists changes to an existing company
	Update(ctx context.Context, company Company) error

	// Delete removes a company by ID
	Delete(ctx context.Context, id string) error
}
