package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
)

func TestSalaryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         SalaryInput
		setupMock     func(*MockSalaryRepository, *MockEmployeeRepository)
		expectedError error
	}{
		{
			name:  "successful create",
			input: SalaryInput{EmployeeID: 1, Amount: "5000.005", EffectiveDate: "2024-01-01"},
			setupMock: func(s *MockSalaryRepository, e *MockEmployeeRepository) {
				e.On("Exists", mock.Anything, uint(1)).Return(true, nil)
				s.On("Create", mock.Anything, mock.MatchedBy(func(sal *model.Salary) bool {
					return sal.Amount.Equal(decimal.RequireFromString("5000.01")) && !sal.EndDate.Valid
				})).Return(nil)
			},
		},
		{
			name:          "missing fields",
			input:         SalaryInput{Amount: "5000"},
			setupMock:     func(*MockSalaryRepository, *MockEmployeeRepository) {},
			expectedError: apperrors.Validation("Employee ID, amount, and effective date are required"),
		},
		{
			name:          "non positive amount",
			input:         SalaryInput{EmployeeID: 1, Amount: "-1", EffectiveDate: "2024-01-01"},
			setupMock:     func(*MockSalaryRepository, *MockEmployeeRepository) {},
			expectedError: apperrors.Validation("Amount must be a positive number"),
		},
		{
			name:          "end before effective",
			input:         SalaryInput{EmployeeID: 1, Amount: "10", EffectiveDate: "2024-02-01", EndDate: "2024-01-31"},
			setupMock:     func(*MockSalaryRepository, *MockEmployeeRepository) {},
			expectedError: apperrors.Validation("End date cannot be before effective date"),
		},
		{
			name:  "unknown employee",
			input: SalaryInput{EmployeeID: 9, Amount: "10", EffectiveDate: "2024-01-01"},
			setupMock: func(s *MockSalaryRepository, e *MockEmployeeRepository) {
				e.On("Exists", mock.Anything, uint(9)).Return(false, nil)
			},
			expectedError: apperrors.ErrEmployeeNotFound,
		},
		{
			name:  "employee removed concurrently",
			input: SalaryInput{EmployeeID: 9, Amount: "10", EffectiveDate: "2024-01-01"},
			setupMock: func(s *MockSalaryRepository, e *MockEmployeeRepository) {
				e.On("Exists", mock.Anything, uint(9)).Return(true, nil)
				s.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrForeignKeyViolated)
			},
			expectedError: apperrors.ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salaries := new(MockSalaryRepository)
			employees := new(MockEmployeeRepository)
			tt.setupMock(salaries, employees)

			service := NewSalaryService(salaries, employees)
			id, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Zero(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(3), id)
			}
			salaries.AssertExpectations(t)
			employees.AssertExpectations(t)
		})
	}
}

func TestSalaryService_Update(t *testing.T) {
	salaries := new(MockSalaryRepository)
	salaries.On("Update", mock.Anything, mock.MatchedBy(func(sal *model.Salary) bool {
		return sal.ID == 4 && sal.EndDate.Valid && sal.EndDate.Date.String() == "2024-06-30"
	})).Return(nil)

	service := NewSalaryService(salaries, new(MockEmployeeRepository))

	err := service.Update(context.Background(), 4, SalaryInput{Amount: "10", EffectiveDate: "2024-01-01", EndDate: "2024-06-30"})
	require.NoError(t, err)

	err = service.Update(context.Background(), 4, SalaryInput{Amount: "10"})
	assert.ErrorIs(t, err, apperrors.Validation("Amount and effective date are required"))

	salaries.AssertExpectations(t)
}
