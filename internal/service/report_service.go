package service

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// ReportService builds the aggregate reports.
type ReportService interface {
	DepartmentSummary(ctx context.Context) ([]model.DepartmentSummary, error)
	MonthlyPayroll(ctx context.Context, month string) (*model.MonthlyPayroll, error)
	ExportMonthlyPayroll(ctx context.Context, month string) (*bytes.Buffer, string, error)
}

type reportService struct {
	reports       repository.ReportRepository
	departments   repository.DepartmentRepository
	deductionRate decimal.Decimal
	log           *zap.Logger
	now           func() time.Time
}

// NewReportService creates a report service. deductionRate is the share of
// gross salary withheld in the payroll report.
func NewReportService(reports repository.ReportRepository, departments repository.DepartmentRepository, deductionRate decimal.Decimal, log *zap.Logger) ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &reportService{
		reports:       reports,
		departments:   departments,
		deductionRate: deductionRate,
		log:           log,
		now:           time.Now,
	}
}

// DepartmentSummary aggregates each employee's current salary by
// department.
func (s *reportService) DepartmentSummary(ctx context.Context) ([]model.DepartmentSummary, error) {
	rows, err := s.reports.DepartmentSummary(ctx, model.NewDate(s.now()))
	if err != nil {
		return nil, apperrors.Internal("department summary", err)
	}
	return rows, nil
}

// MonthlyPayroll computes gross, deduction and net pay per employee for
// the month and averages them per department.
func (s *reportService) MonthlyPayroll(ctx context.Context, month string) (*model.MonthlyPayroll, error) {
	start, err := s.parseMonth(month)
	if err != nil {
		return nil, err
	}
	end := model.Date{Time: start.AddDate(0, 1, -1)}

	lines, err := s.reports.PayrollLines(ctx, start, end)
	if err != nil {
		return nil, apperrors.Internal("payroll lines", err)
	}
	departments, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("list departments", err)
	}

	for i := range lines {
		gross := lines[i].GrossSalary.Round(2)
		deduction := gross.Mul(s.deductionRate).Round(2)
		lines[i].GrossSalary = gross
		lines[i].Deduction = deduction
		lines[i].NetSalary = gross.Sub(deduction)
	}

	return &model.MonthlyPayroll{
		Month:         start.String(),
		DeductionRate: s.deductionRate,
		Employees:     lines,
		Departments:   aggregateByDepartment(lines, departments),
	}, nil
}

// parseMonth accepts YYYY-MM or any YYYY-MM-DD and returns the first day of
// that month. An empty value means the current month.
func (s *reportService) parseMonth(month string) (model.Date, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		today := model.NewDate(s.now())
		return model.Date{Time: today.AddDate(0, 0, 1-today.Day())}, nil
	}
	if len(month) == len("2006-01") {
		month += "-01"
	}
	d, err := model.ParseDate(month)
	if err != nil {
		return model.Date{}, apperrors.Validation("Month must be in YYYY-MM-01 format")
	}
	return model.Date{Time: d.AddDate(0, 0, 1-d.Day())}, nil
}

type departmentTotals struct {
	row       *model.DepartmentPayroll
	gross     decimal.Decimal
	deduction decimal.Decimal
	net       decimal.Decimal
}

func aggregateByDepartment(lines []model.PayrollLine, departments []model.Department) []model.DepartmentPayroll {
	totals := make(map[string]*departmentTotals, len(departments))
	for _, d := range departments {
		name := d.Name
		totals[d.Code] = &departmentTotals{row: &model.DepartmentPayroll{
			DepartmentCode: d.Code,
			DepartmentName: &name,
			BaseSalary:     decimal.NewNullDecimal(d.GrossSalary),
		}}
	}

	for _, line := range lines {
		t, ok := totals[line.DepartmentCode]
		if !ok {
			t = &departmentTotals{row: &model.DepartmentPayroll{
				DepartmentCode: line.DepartmentCode,
				DepartmentName: line.DepartmentName,
			}}
			totals[line.DepartmentCode] = t
		}
		t.row.EmployeeCount++
		t.gross = t.gross.Add(line.GrossSalary)
		t.deduction = t.deduction.Add(line.Deduction)
		t.net = t.net.Add(line.NetSalary)
	}

	out := make([]model.DepartmentPayroll, 0, len(totals))
	for _, t := range totals {
		if n := t.row.EmployeeCount; n > 0 {
			count := decimal.NewFromInt(int64(n))
			t.row.AverageGrossSalary = decimal.NewNullDecimal(t.gross.Div(count).Round(2))
			t.row.AverageDeduction = decimal.NewNullDecimal(t.deduction.Div(count).Round(2))
			t.row.AverageNetSalary = decimal.NewNullDecimal(t.net.Div(count).Round(2))
		}
		out = append(out, *t.row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DepartmentCode < out[j].DepartmentCode
	})
	return out
}
