package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is one entry of an employee's salary history. A null EndDate
// means the entry is open ended.
type Salary struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	EmployeeID    uint            `json:"employee_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	EffectiveDate Date            `json:"effective_date" gorm:"not null"`
	EndDate       NullDate        `json:"end_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SalaryWithEmployee is a salary row joined with the employee's name.
type SalaryWithEmployee struct {
	Salary
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
