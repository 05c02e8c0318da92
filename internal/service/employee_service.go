package service

import (
	"context"
	"fmt"
	"strings"

	"emsapi/internal/cache"
	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// EmployeeInput carries the employee form. HireDate is YYYY-MM-DD or empty.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	Position   string
	Department string
	HireDate   string
}

// EmployeeService exposes employee CRUD.
type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id uint) (*model.Employee, error)
	Create(ctx context.Context, in EmployeeInput) (uint, error)
	Update(ctx context.Context, id uint, in EmployeeInput) error
	Delete(ctx context.Context, id uint) error
}

type employeeService struct {
	repo  repository.EmployeeRepository
	cache *cache.Client
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(repo repository.EmployeeRepository, cache *cache.Client) EmployeeService {
	return &employeeService{repo: repo, cache: cache}
}

func employeeCacheKey(id uint) string {
	return fmt.Sprintf("employee:%d", id)
}

func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("list employees", err)
	}
	return employees, nil
}

func (s *employeeService) Get(ctx context.Context, id uint) (*model.Employee, error) {
	var cached model.Employee
	if s.cache.GetJSON(ctx, employeeCacheKey(id), &cached) {
		return &cached, nil
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, apperrors.Internal("find employee", err)
	}

	s.cache.SetJSON(ctx, employeeCacheKey(id), employee)
	return employee, nil
}

func (s *employeeService) Create(ctx context.Context, in EmployeeInput) (uint, error) {
	employee, err := in.toModel()
	if err != nil {
		return 0, err
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if isDuplicate(err) {
			return 0, apperrors.Wrap(apperrors.ErrEmailExists, err)
		}
		return 0, apperrors.Internal("create employee", err)
	}
	return employee.ID, nil
}

// Update overwrites the employee. Updating an ID that does not exist
// succeeds without effect.
func (s *employeeService) Update(ctx context.Context, id uint, in EmployeeInput) error {
	employee, err := in.toModel()
	if err != nil {
		return err
	}
	employee.ID = id
	if err := s.repo.Update(ctx, employee); err != nil {
		if isDuplicate(err) {
			return apperrors.Wrap(apperrors.ErrEmailExists, err)
		}
		return apperrors.Internal("update employee", err)
	}
	_ = s.cache.Delete(ctx, employeeCacheKey(id))
	return nil
}

// Delete removes the employee and its salaries. It is idempotent.
func (s *employeeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("delete employee", err)
	}
	_ = s.cache.Delete(ctx, employeeCacheKey(id))
	return nil
}

func (in EmployeeInput) toModel() (*model.Employee, error) {
	if blank(in.FirstName) || blank(in.LastName) || blank(in.Email) {
		return nil, apperrors.Validation("First name, last name, and email are required")
	}

	var hireDate model.NullDate
	if !blank(in.HireDate) {
		d, err := model.ParseDate(in.HireDate)
		if err != nil {
			return nil, apperrors.Validation("Hire date must be a date in YYYY-MM-DD format")
		}
		hireDate = model.NewNullDate(d)
	}

	return &model.Employee{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		HireDate:   hireDate,
	}, nil
}
