package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Position  string
	Age       int
	Salary    *decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
