package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Department is keyed by its code. GrossSalary is the department base
// figure used by the payroll report.
type Department struct {
	Code        string          `json:"department_code" gorm:"column:department_code;primaryKey;size:20"`
	Name        string          `json:"department_name" gorm:"column:department_name;size:100;not null"`
	GrossSalary decimal.Decimal `json:"gross_salary" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
