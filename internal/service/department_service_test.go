package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
)

func TestDepartmentService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         DepartmentInput
		setupMock     func(*MockDepartmentRepository)
		expectedError error
	}{
		{
			name:  "successful create",
			input: DepartmentInput{Code: "ENG", Name: "Engineering", GrossSalary: "90000"},
			setupMock: func(m *MockDepartmentRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Department) bool {
					return d.Code == "ENG" && d.GrossSalary.Equal(decimal.NewFromInt(90000))
				})).Return(nil)
			},
		},
		{
			name:          "missing name",
			input:         DepartmentInput{Code: "ENG"},
			setupMock:     func(m *MockDepartmentRepository) {},
			expectedError: apperrors.Validation("Department code and name are required"),
		},
		{
			name:          "negative gross",
			input:         DepartmentInput{Code: "ENG", Name: "Engineering", GrossSalary: "-5"},
			setupMock:     func(m *MockDepartmentRepository) {},
			expectedError: apperrors.Validation("Gross salary must be a non-negative number"),
		},
		{
			name:  "duplicate code",
			input: DepartmentInput{Code: "ENG", Name: "Engineering"},
			setupMock: func(m *MockDepartmentRepository) {
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDepartmentExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDepartmentRepository)
			tt.setupMock(mockRepo)

			service := NewDepartmentService(mockRepo)
			code, err := service.Create(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ENG", code)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDepartmentService_Update(t *testing.T) {
	mockRepo := new(MockDepartmentRepository)
	mockRepo.On("FindByCode", mock.Anything, "ENG").Return(&model.Department{Code: "ENG"}, nil)
	mockRepo.On("FindByCode", mock.Anything, "OPS").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *model.Department) bool {
		return d.Code == "ENG" && d.Name == "Platform"
	})).Return(nil)

	service := NewDepartmentService(mockRepo)
	ctx := context.Background()

	require.NoError(t, service.Update(ctx, "ENG", DepartmentInput{Code: "IGNORED", Name: "Platform"}))

	err := service.Update(ctx, "OPS", DepartmentInput{Name: "Operations"})
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)

	mockRepo.AssertExpectations(t)
}

func TestDepartmentService_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockDepartmentRepository)
		wantErr       bool
		expectedError error
		expectedKind  apperrors.Kind
	}{
		{
			name: "no employees",
			setupMock: func(m *MockDepartmentRepository) {
				m.On("CountEmployees", mock.Anything, "ENG").Return(int64(0), nil)
				m.On("Delete", mock.Anything, "ENG").Return(nil)
			},
		},
		{
			name: "employees assigned",
			setupMock: func(m *MockDepartmentRepository) {
				m.On("CountEmployees", mock.Anything, "ENG").Return(int64(2), nil)
			},
			wantErr:       true,
			expectedError: apperrors.ErrDepartmentHasEmployees,
			expectedKind:  apperrors.KindConflict,
		},
		{
			name: "count fails",
			setupMock: func(m *MockDepartmentRepository) {
				m.On("CountEmployees", mock.Anything, "ENG").Return(int64(0), errors.New("timeout"))
			},
			wantErr:      true,
			expectedKind: apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDepartmentRepository)
			tt.setupMock(mockRepo)

			err := NewDepartmentService(mockRepo).Delete(context.Background(), "ENG")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
