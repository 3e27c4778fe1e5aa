package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/company"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	company.CompanyRepository
}

// ListByCompany implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByCompany(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	if _, err := s.CompanyRepository.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	employees, err := s.EmployeeRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return responses, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.CompanyRepository.GetByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return employee.EmployeeResponse{}, company.ErrCompanyNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	var salary *decimal.Decimal
	if req.Salary != nil {
		parsed, err := decimal.NewFromString(*req.Salary)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to parse salary: %w", err)
		}
		salary = &parsed
	}

	now := time.Now().UTC()
	emp := employee.Employee{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Position:  req.Position,
		Age:       req.Age,
		Salary:    salary,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.EmployeeRepository.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployeeToResponse(created), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Position != nil {
		emp.Position = *req.Position
	}
	if req.Age != nil {
		emp.Age = *req.Age
	}
	if req.Salary != nil {
		parsed, err := decimal.NewFromString(*req.Salary)
		if err != nil {
			return fmt.Errorf("failed to parse salary: %w", err)
		}
		emp.Salary = &parsed
	}
	emp.UpdatedAt = time.Now().UTC()

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var salary *string
	if emp.Salary != nil {
		formatted := emp.Salary.String()
		salary = &formatted
	}

	return employee.EmployeeResponse{
		ID:        emp.ID,
		CompanyID: emp.CompanyID,
		Name:      emp.Name,
		Position:  emp.Position,
		Age:       emp.Age,
		Salary:    salary,
		CreatedAt: emp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: emp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
	}
}
