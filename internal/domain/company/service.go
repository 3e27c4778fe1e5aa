package company

import (
	"context"
)

type CompanyService interface {
	List(ctx context.Context) ([]CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Update(ctx context.Context, req UpdateCompanyRequest) error

	// Delete removes the company together with its employees and their
	// attendance records, inside one transaction.
	Delete(ctx context.Context, id string) error
}
