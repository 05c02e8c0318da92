package repository

import (
	"context"

	"gorm.io/gorm"

	"emsapi/internal/model"
)

// ReportRepository runs the aggregate reporting queries. Dates are passed
// in rather than taken from the database clock so every dialect agrees.
type ReportRepository interface {
	DepartmentSummary(ctx context.Context, today model.Date) ([]model.DepartmentSummary, error)
	PayrollLines(ctx context.Context, monthStart, monthEnd model.Date) ([]model.PayrollLine, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// An employee's current salary is the row with the latest effective date
// whose end date is unset or after today.
const departmentSummarySQL = `
SELECT
    e.department AS department_code,
    d.department_name AS department_name,
    COUNT(e.id) AS employee_count,
    AVG(s.amount) AS average_salary,
    MIN(s.amount) AS min_salary,
    MAX(s.amount) AS max_salary
FROM employees e
LEFT JOIN departments d ON d.department_code = e.department
LEFT JOIN salaries s ON s.id = (
    SELECT s2.id FROM salaries s2
    WHERE s2.employee_id = e.id
      AND (s2.end_date IS NULL OR s2.end_date > ?)
    ORDER BY s2.effective_date DESC, s2.id DESC
    LIMIT 1
)
GROUP BY e.department, d.department_name
ORDER BY e.department`

// The salary paid in a month is the latest one that started on or before
// the month's last day and had not ended before its first day.
const payrollLinesSQL = `
SELECT
    e.id AS employee_id,
    e.first_name,
    e.last_name,
    e.position,
    e.department AS department_code,
    d.department_name AS department_name,
    s.amount AS gross_salary
FROM employees e
JOIN salaries s ON s.id = (
    SELECT s2.id FROM salaries s2
    WHERE s2.employee_id = e.id
      AND s2.effective_date <= ?
      AND (s2.end_date IS NULL OR s2.end_date >= ?)
    ORDER BY s2.effective_date DESC, s2.id DESC
    LIMIT 1
)
LEFT JOIN departments d ON d.department_code = e.department
ORDER BY e.last_name, e.first_name, e.id`

func (r *reportRepository) DepartmentSummary(ctx context.Context, today model.Date) ([]model.DepartmentSummary, error) {
	rows := []model.DepartmentSummary{}
	if err := r.db.WithContext(ctx).Raw(departmentSummarySQL, today).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		roundNull(&rows[i].AverageSalary)
		roundNull(&rows[i].MinSalary)
		roundNull(&rows[i].MaxSalary)
	}
	return rows, nil
}

func (r *reportRepository) PayrollLines(ctx context.Context, monthStart, monthEnd model.Date) ([]model.PayrollLine, error) {
	rows := []model.PayrollLine{}
	if err := r.db.WithContext(ctx).Raw(payrollLinesSQL, monthEnd, monthStart).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
