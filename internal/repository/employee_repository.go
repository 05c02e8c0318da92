package repository

import (
	"context"

	"gorm.io/gorm"

	"emsapi/internal/model"
)

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	List(ctx context.Context) ([]model.Employee, error)
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uint) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// List returns every employee ordered by last then first name.
func (r *employeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	employees := []model.Employee{}
	if err := r.db.WithContext(ctx).Order("last_name, first_name, id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// FindByID finds an employee by ID.
func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// Exists reports whether an employee with the ID exists.
func (r *employeeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new employee. A taken email surfaces as
// gorm.ErrDuplicatedKey.
func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// Update overwrites the editable fields of the employee with the given ID.
// Updating an ID that does not exist affects no rows and is not an error.
func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", employee.ID).
		Updates(map[string]interface{}{
			"first_name": employee.FirstName,
			"last_name":  employee.LastName,
			"email":      employee.Email,
			"phone":      employee.Phone,
			"address":    employee.Address,
			"position":   employee.Position,
			"department": employee.Department,
			"hire_date":  employee.HireDate,
		}).Error
}

// Delete removes the employee and its salary history in one transaction.
// Deleting a missing ID is not an error.
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&model.Salary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Employee{}, id).Error
	})
}
