package employee

import (
	"github.com/shopspring/decimal"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/validator"
)

const maxNameLength = 100

type CreateEmployeeRequest struct {
	CompanyID string  `json:"-"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Age       int     `json:"age"`
	Salary    *string `json:"salary,omitempty"` // decimal string, e.g. "4500.00"
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	} else if !validator.IsValidUUID(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id must be a valid UUID",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.MaxLength(r.Name, maxNameLength) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if r.Age < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "age",
			Message: "age must not be negative",
		})
	}

	if r.Salary != nil {
		if _, err := decimal.NewFromString(*r.Salary); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "salary",
				Message: "salary must be a valid decimal number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Salary   *string `json:"salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be blank",
		})
	}

	if r.Age != nil && *r.Age < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "age",
			Message: "age must not be negative",
		})
	}

	if r.Salary != nil {
		if _, err := decimal.NewFromString(*r.Salary); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "salary",
				Message: "salary must be a valid decimal number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Age       int     `json:"age"`
	Salary    *string `json:"salary,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
