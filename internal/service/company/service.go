package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/company"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/database"
	"github.com/stafftrack/stafftrack-backend-go/internal/repository/postgresql"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository

	db *database.DB
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.CompanyResponse, 0, len(companies))
	for _, com := range companies {
		responses = append(responses, mapCompanyToResponse(com))
	}

	return responses, nil
}

// GetByID implements company.CompanyService.
func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	com, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	return mapCompanyToResponse(com), nil
}

// Create implements company.CompanyService.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	now := time.Now().UTC()
	com := company.Company{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      req.Name,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.CompanyRepository.Create(ctx, com)
	if err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to create company: %w", err)
	}

	return mapCompanyToResponse(created), nil
}

// Update implements company.CompanyService.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	com, err := s.CompanyRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}

	if req.Name != nil {
		com.Name = *req.Name
	}
	if req.Address != nil {
		com.Address = req.Address
	}
	com.UpdatedAt = time.Now().UTC()

	if err := s.CompanyRepository.Update(ctx, com); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	return nil
}

// Delete implements company.CompanyService.
// Attendance records and employees go first so no orphan rows survive a
// partial failure; the whole cascade runs in one transaction.
func (s *CompanyServiceImpl) Delete(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.CompanyRepository.GetByID(txCtx, id); err != nil {
			if errors.Is(err, company.ErrCompanyNotFound) {
				return company.ErrCompanyNotFound
			}
			return fmt.Errorf("failed to get company: %w", err)
		}

		if err := s.AttendanceRepository.DeleteByCompany(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete company attendance records: %w", err)
		}

		if err := s.EmployeeRepository.DeleteByCompany(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete company employees: %w", err)
		}

		if err := s.CompanyRepository.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete company: %w", err)
		}

		return nil
	})
}

func mapCompanyToResponse(com company.Company) company.CompanyResponse {
	return company.CompanyResponse{
		ID:        com.ID,
		Name:      com.Name,
		Address:   com.Address,
		CreatedAt: com.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: com.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewCompanyService(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	db *database.DB,
) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository:    companyRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		db:                   db,
	}
}
