package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// DepartmentInput carries the department form. GrossSalary is a decimal
// string; empty means zero.
type DepartmentInput struct {
	Code        string
	Name        string
	GrossSalary string
}

// DepartmentService exposes department CRUD with the employee guard on
// delete.
type DepartmentService interface {
	List(ctx context.Context) ([]model.Department, error)
	Get(ctx context.Context, code string) (*model.Department, error)
	Create(ctx context.Context, in DepartmentInput) (string, error)
	Update(ctx context.Context, code string, in DepartmentInput) error
	Delete(ctx context.Context, code string) error
}

type departmentService struct {
	repo repository.DepartmentRepository
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(repo repository.DepartmentRepository) DepartmentService {
	return &departmentService{repo: repo}
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("list departments", err)
	}
	return departments, nil
}

func (s *departmentService) Get(ctx context.Context, code string) (*model.Department, error) {
	department, err := s.repo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, apperrors.Internal("find department", err)
	}
	return department, nil
}

func (s *departmentService) Create(ctx context.Context, in DepartmentInput) (string, error) {
	department, err := in.toModel()
	if err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, department); err != nil {
		if isDuplicate(err) {
			return "", apperrors.Wrap(apperrors.ErrDepartmentExists, err)
		}
		return "", apperrors.Internal("create department", err)
	}
	return department.Code, nil
}

// Update renames the department and sets its base salary. The code in the
// path wins over any code in the body.
func (s *departmentService) Update(ctx context.Context, code string, in DepartmentInput) error {
	in.Code = code
	department, err := in.toModel()
	if err != nil {
		return err
	}

	return s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.DepartmentRepository) error {
		if _, err := repo.FindByCode(ctx, department.Code); err != nil {
			if isNotFound(err) {
				return apperrors.ErrDepartmentNotFound
			}
			return apperrors.Internal("find department", err)
		}
		if err := repo.Update(ctx, department); err != nil {
			return apperrors.Internal("update department", err)
		}
		return nil
	})
}

// Delete refuses while employees reference the code. Deleting an unknown
// code succeeds.
func (s *departmentService) Delete(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	return s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.DepartmentRepository) error {
		count, err := repo.CountEmployees(ctx, code)
		if err != nil {
			return apperrors.Internal("count department employees", err)
		}
		if count > 0 {
			return apperrors.ErrDepartmentHasEmployees
		}
		if err := repo.Delete(ctx, code); err != nil {
			return apperrors.Internal("delete department", err)
		}
		return nil
	})
}

func (in DepartmentInput) toModel() (*model.Department, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, apperrors.Validation("Department code and name are required")
	}
	if len(code) > 20 {
		return nil, apperrors.Validation("Department code must be at most 20 characters")
	}

	gross := decimal.Zero
	if !blank(in.GrossSalary) {
		d, err := decimal.NewFromString(strings.TrimSpace(in.GrossSalary))
		if err != nil || d.IsNegative() {
			return nil, apperrors.Validation("Gross salary must be a non-negative number")
		}
		gross = d.Round(2)
	}

	return &model.Department{Code: code, Name: name, GrossSalary: gross}, nil
}
