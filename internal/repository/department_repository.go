package repository

import (
	"context"

	"gorm.io/gorm"

	"emsapi/internal/model"
)

// DepartmentRepository defines department persistence operations.
type DepartmentRepository interface {
	List(ctx context.Context) ([]model.Department, error)
	FindByCode(ctx context.Context, code string) (*model.Department, error)
	Create(ctx context.Context, department *model.Department) error
	Update(ctx context.Context, department *model.Department) error
	Delete(ctx context.Context, code string) error
	CountEmployees(ctx context.Context, code string) (int64, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo DepartmentRepository) error) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context) ([]model.Department, error) {
	departments := []model.Department{}
	if err := r.db.WithContext(ctx).Order("department_code").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) FindByCode(ctx context.Context, code string) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).Where("department_code = ?", code).First(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

// Create inserts a department. A taken code surfaces as
// gorm.ErrDuplicatedKey.
func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *model.Department) error {
	return r.db.WithContext(ctx).Model(&model.Department{}).
		Where("department_code = ?", department.Code).
		Updates(map[string]interface{}{
			"department_name": department.Name,
			"gross_salary":    department.GrossSalary,
		}).Error
}

func (r *departmentRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Where("department_code = ?", code).Delete(&model.Department{}).Error
}

// CountEmployees counts employees assigned to the department code.
func (r *departmentRepository) CountEmployees(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("department = ?", code).Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *departmentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo DepartmentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &departmentRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
