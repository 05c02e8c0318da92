package repository

import (
	"context"

	"gorm.io/gorm"

	"emsapi/internal/model"
)

// SalaryRepository defines salary persistence operations.
type SalaryRepository interface {
	List(ctx context.Context) ([]model.SalaryWithEmployee, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]model.Salary, error)
	Create(ctx context.Context, salary *model.Salary) error
	Update(ctx context.Context, salary *model.Salary) error
	Delete(ctx context.Context, id uint) error
}

type salaryRepository struct {
	db *gorm.DB
}

// NewSalaryRepository creates a new salary repository.
func NewSalaryRepository(db *gorm.DB) SalaryRepository {
	return &salaryRepository{db: db}
}

// List returns every salary with its employee's name, newest first.
func (r *salaryRepository) List(ctx context.Context) ([]model.SalaryWithEmployee, error) {
	rows := []model.SalaryWithEmployee{}
	err := r.db.WithContext(ctx).
		Table("salaries AS s").
		Select("s.id, s.employee_id, s.amount, s.effective_date, s.end_date, s.created_at, e.first_name, e.last_name").
		Joins("JOIN employees AS e ON e.id = s.employee_id").
		Order("s.effective_date DESC, s.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByEmployee returns an employee's salary history, newest first.
func (r *salaryRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]model.Salary, error) {
	salaries := []model.Salary{}
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, id DESC").
		Find(&salaries).Error
	if err != nil {
		return nil, err
	}
	return salaries, nil
}

// Create inserts a salary. A missing employee surfaces as
// gorm.ErrForeignKeyViolated.
func (r *salaryRepository) Create(ctx context.Context, salary *model.Salary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

// Update overwrites amount and validity window of the salary with the
// given ID. A missing ID affects no rows and is not an error.
func (r *salaryRepository) Update(ctx context.Context, salary *model.Salary) error {
	return r.db.WithContext(ctx).Model(&model.Salary{}).
		Where("id = ?", salary.ID).
		Updates(map[string]interface{}{
			"amount":         salary.Amount,
			"effective_date": salary.EffectiveDate,
			"end_date":       salary.EndDate,
		}).Error
}

// Delete removes a salary. Deleting a missing ID is not an error.
func (r *salaryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Salary{}, id).Error
}
