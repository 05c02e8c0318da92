package model

import "github.com/shopspring/decimal"

// DepartmentSummary aggregates current salaries per department value.
// Aggregates are null when no employee of the department has a current
// salary.
type DepartmentSummary struct {
	DepartmentCode string              `json:"department_code"`
	DepartmentName *string             `json:"department_name"`
	EmployeeCount  int64               `json:"employee_count"`
	AverageSalary  decimal.NullDecimal `json:"average_salary"`
	MinSalary      decimal.NullDecimal `json:"min_salary"`
	MaxSalary      decimal.NullDecimal `json:"max_salary"`
}

// PayrollLine is one employee's pay for a month.
type PayrollLine struct {
	EmployeeID     uint            `json:"employee_id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Position       string          `json:"position"`
	DepartmentCode string          `json:"department_code"`
	DepartmentName *string         `json:"department_name"`
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	Deduction      decimal.Decimal `json:"deduction"`
	NetSalary      decimal.Decimal `json:"net_salary"`
}

// DepartmentPayroll aggregates a month's payroll lines per department.
type DepartmentPayroll struct {
	DepartmentCode     string              `json:"department_code"`
	DepartmentName     *string             `json:"department_name"`
	EmployeeCount      int                 `json:"employee_count"`
	BaseSalary         decimal.NullDecimal `json:"base_salary"`
	AverageGrossSalary decimal.NullDecimal `json:"average_gross_salary"`
	AverageDeduction   decimal.NullDecimal `json:"average_deduction"`
	AverageNetSalary   decimal.NullDecimal `json:"average_net_salary"`
}

// MonthlyPayroll is the full monthly payroll report.
type MonthlyPayroll struct {
	Month         string              `json:"month"`
	DeductionRate decimal.Decimal     `json:"deduction_rate"`
	Employees     []PayrollLine       `json:"employees"`
	Departments   []DepartmentPayroll `json:"departments"`
}
