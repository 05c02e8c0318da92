package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dateIs(want string) interface{} {
	return mock.MatchedBy(func(d model.Date) bool { return d.String() == want })
}

func payrollFixture(reports *MockReportRepository, departments *MockDepartmentRepository) {
	reports.On("PayrollLines", mock.Anything, dateIs("2024-02-01"), dateIs("2024-02-29")).Return([]model.PayrollLine{
		{EmployeeID: 1, FirstName: "Ann", LastName: "Lee", DepartmentCode: "ENG", DepartmentName: strPtr("Engineering"), GrossSalary: dec("5000")},
		{EmployeeID: 2, FirstName: "Bob", LastName: "Moe", DepartmentCode: "ENG", DepartmentName: strPtr("Engineering"), GrossSalary: dec("3333.33")},
		{EmployeeID: 3, FirstName: "Cy", LastName: "Ng", DepartmentCode: "MKT", GrossSalary: dec("1000")},
	}, nil)
	departments.On("List", mock.Anything).Return([]model.Department{
		{Code: "ENG", Name: "Engineering", GrossSalary: dec("90000")},
		{Code: "OPS", Name: "Operations", GrossSalary: decimal.Zero},
	}, nil)
}

func TestReportService_MonthlyPayroll(t *testing.T) {
	reports := new(MockReportRepository)
	departments := new(MockDepartmentRepository)
	payrollFixture(reports, departments)

	service := NewReportService(reports, departments, dec("0.10"), zap.NewNop())

	report, err := service.MonthlyPayroll(context.Background(), "2024-02-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01", report.Month)
	require.Len(t, report.Employees, 3)

	bob := report.Employees[1]
	assert.Equal(t, "333.33", bob.Deduction.String())
	assert.Equal(t, "3000", bob.NetSalary.String())

	require.Len(t, report.Departments, 3)
	eng, mkt, ops := report.Departments[0], report.Departments[1], report.Departments[2]

	assert.Equal(t, "ENG", eng.DepartmentCode)
	assert.Equal(t, 2, eng.EmployeeCount)
	assert.Equal(t, "90000", eng.BaseSalary.Decimal.String())
	assert.Equal(t, "4166.67", eng.AverageGrossSalary.Decimal.String())
	assert.Equal(t, "416.67", eng.AverageDeduction.Decimal.String())
	assert.Equal(t, "3750", eng.AverageNetSalary.Decimal.String())

	assert.Equal(t, "MKT", mkt.DepartmentCode)
	assert.Nil(t, mkt.DepartmentName)
	assert.False(t, mkt.BaseSalary.Valid)
	assert.Equal(t, "900", mkt.AverageNetSalary.Decimal.String())

	assert.Equal(t, "OPS", ops.DepartmentCode)
	assert.Zero(t, ops.EmployeeCount)
	assert.True(t, ops.BaseSalary.Valid)
	assert.False(t, ops.AverageGrossSalary.Valid)
	assert.False(t, ops.AverageNetSalary.Valid)
}

func TestReportService_MonthFormats(t *testing.T) {
	tests := []struct {
		name    string
		month   string
		wantErr bool
	}{
		{name: "first of month", month: "2024-02-01"},
		{name: "year and month", month: "2024-02"},
		{name: "mid month", month: "2024-02-15"},
		{name: "garbage", month: "Feb 2024", wantErr: true},
		{name: "bad month", month: "2024-13", wantErr: true},
		{name: "trailing text", month: "2024-02-01x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := new(MockReportRepository)
			departments := new(MockDepartmentRepository)
			if !tt.wantErr {
				payrollFixture(reports, departments)
			}

			service := NewReportService(reports, departments, dec("0.10"), nil)
			report, err := service.MonthlyPayroll(context.Background(), tt.month)

			if tt.wantErr {
				assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
				assert.Nil(t, report)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2024-02-01", report.Month)
			reports.AssertExpectations(t)
		})
	}
}

func TestReportService_DepartmentSummary(t *testing.T) {
	reports := new(MockReportRepository)
	reports.On("DepartmentSummary", mock.Anything, dateIs("2024-03-10")).Return([]model.DepartmentSummary{
		{DepartmentCode: "ENG", EmployeeCount: 1, AverageSalary: decimal.NewNullDecimal(dec("5000"))},
		{DepartmentCode: "OPS", EmployeeCount: 1},
	}, nil)

	service := NewReportService(reports, new(MockDepartmentRepository), dec("0.10"), nil)
	service.(*reportService).now = func() time.Time {
		return time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	}

	rows, err := service.DepartmentSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.False(t, rows[1].AverageSalary.Valid)
	reports.AssertExpectations(t)
}

func TestReportService_ExportMonthlyPayroll(t *testing.T) {
	reports := new(MockReportRepository)
	departments := new(MockDepartmentRepository)
	payrollFixture(reports, departments)

	service := NewReportService(reports, departments, dec("0.10"), nil)

	buf, filename, err := service.ExportMonthlyPayroll(context.Background(), "2024-02")
	require.NoError(t, err)
	assert.Equal(t, "payroll-2024-02.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Payroll", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee ID", header)

	name, err := f.GetCellValue("Payroll", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)

	dept, err := f.GetCellValue("Departments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Engineering (ENG)", dept)

	unregistered, err := f.GetCellValue("Departments", "A3")
	require.NoError(t, err)
	assert.Equal(t, "MKT", unregistered)
}
