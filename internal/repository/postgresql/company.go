package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/company"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

// List implements company.CompanyRepository.
func (c *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM companies
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var com company.Company
		if err := rows.Scan(&com.ID, &com.Name, &com.Address, &com.CreatedAt, &com.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, com)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}

	return companies, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, address, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var com company.Company
	err := q.QueryRow(ctx, query, id).Scan(&com.ID, &com.Name, &com.Address, &com.CreatedAt, &com.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by ID: %w", err)
	}

	return com, nil
}

// Create implements company.CompanyRepository.
func (c *companyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		newCompany.ID,
		newCompany.Name,
		newCompany.Address,
		newCompany.CreatedAt,
		newCompany.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return newCompany, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepository) Update(ctx context.Context, com company.Company) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $1, address = $2, updated_at = $3
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, com.Name, com.Address, com.UpdatedAt, com.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company: %w", err)
	}

	return nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, c.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}

	return nil
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}
