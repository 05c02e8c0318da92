package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// SalaryInput carries the salary form. Amount is a decimal string and the
// dates are YYYY-MM-DD; EndDate may be empty for an open-ended salary.
type SalaryInput struct {
	EmployeeID    uint
	Amount        string
	EffectiveDate string
	EndDate       string
}

// SalaryService exposes salary CRUD.
type SalaryService interface {
	List(ctx context.Context) ([]model.SalaryWithEmployee, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]model.Salary, error)
	Create(ctx context.Context, in SalaryInput) (uint, error)
	Update(ctx context.Context, id uint, in SalaryInput) error
	Delete(ctx context.Context, id uint) error
}

type salaryService struct {
	repo         repository.SalaryRepository
	employeeRepo repository.EmployeeRepository
}

// NewSalaryService creates a new salary service.
func NewSalaryService(repo repository.SalaryRepository, employeeRepo repository.EmployeeRepository) SalaryService {
	return &salaryService{repo: repo, employeeRepo: employeeRepo}
}

func (s *salaryService) List(ctx context.Context) ([]model.SalaryWithEmployee, error) {
	salaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("list salaries", err)
	}
	return salaries, nil
}

func (s *salaryService) ListByEmployee(ctx context.Context, employeeID uint) ([]model.Salary, error) {
	salaries, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, apperrors.Internal("list employee salaries", err)
	}
	return salaries, nil
}

func (s *salaryService) Create(ctx context.Context, in SalaryInput) (uint, error) {
	if in.EmployeeID == 0 || blank(in.Amount) || blank(in.EffectiveDate) {
		return 0, apperrors.Validation("Employee ID, amount, and effective date are required")
	}
	salary, err := in.toModel()
	if err != nil {
		return 0, err
	}

	exists, err := s.employeeRepo.Exists(ctx, in.EmployeeID)
	if err != nil {
		return 0, apperrors.Internal("check employee", err)
	}
	if !exists {
		return 0, apperrors.ErrEmployeeNotFound
	}

	if err := s.repo.Create(ctx, salary); err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.Wrap(apperrors.ErrEmployeeNotFound, err)
		}
		return 0, apperrors.Internal("create salary", err)
	}
	return salary.ID, nil
}

// Update overwrites amount and validity window. A missing ID is a no-op.
func (s *salaryService) Update(ctx context.Context, id uint, in SalaryInput) error {
	if blank(in.Amount) || blank(in.EffectiveDate) {
		return apperrors.Validation("Amount and effective date are required")
	}
	salary, err := in.toModel()
	if err != nil {
		return err
	}
	salary.ID = id
	if err := s.repo.Update(ctx, salary); err != nil {
		return apperrors.Internal("update salary", err)
	}
	return nil
}

// Delete removes a salary. It is idempotent.
func (s *salaryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("delete salary", err)
	}
	return nil
}

func (in SalaryInput) toModel() (*model.Salary, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !amount.IsPositive() {
		return nil, apperrors.Validation("Amount must be a positive number")
	}

	effective, err := model.ParseDate(in.EffectiveDate)
	if err != nil {
		return nil, apperrors.Validation("Effective date must be a date in YYYY-MM-DD format")
	}

	var end model.NullDate
	if !blank(in.EndDate) {
		d, err := model.ParseDate(in.EndDate)
		if err != nil {
			return nil, apperrors.Validation("End date must be a date in YYYY-MM-DD format")
		}
		if d.Before(effective.Time) {
			return nil, apperrors.Validation("End date cannot be before effective date")
		}
		end = model.NewNullDate(d)
	}

	return &model.Salary{
		EmployeeID:    in.EmployeeID,
		Amount:        amount.Round(2),
		EffectiveDate: effective,
		EndDate:       end,
	}, nil
}
