package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	apperrors "emsapi/internal/errors"
)

const (
	payrollSheet    = "Payroll"
	departmentSheet = "Departments"
)

// ExportMonthlyPayroll renders the monthly payroll report as an .xlsx
// workbook with one sheet for employees and one for departments. It returns
// the workbook and a suggested file name.
func (s *reportService) ExportMonthlyPayroll(ctx context.Context, month string) (*bytes.Buffer, string, error) {
	report, err := s.MonthlyPayroll(ctx, month)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(payrollSheet)
	if err != nil {
		return nil, "", apperrors.Internal("create sheet", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", apperrors.Internal("delete default sheet", err)
	}
	if _, err := f.NewSheet(departmentSheet); err != nil {
		return nil, "", apperrors.Internal("create sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", apperrors.Internal("create style", err)
	}

	employeeRows := [][]interface{}{{
		"Employee ID", "First Name", "Last Name", "Position", "Department",
		"Gross Salary", "Deduction", "Net Salary",
	}}
	for _, line := range report.Employees {
		employeeRows = append(employeeRows, []interface{}{
			line.EmployeeID,
			line.FirstName,
			line.LastName,
			line.Position,
			departmentLabel(line.DepartmentCode, line.DepartmentName),
			line.GrossSalary.InexactFloat64(),
			line.Deduction.InexactFloat64(),
			line.NetSalary.InexactFloat64(),
		})
	}

	departmentRows := [][]interface{}{{
		"Department", "Employees", "Base Salary",
		"Average Gross", "Average Deduction", "Average Net",
	}}
	for _, d := range report.Departments {
		departmentRows = append(departmentRows, []interface{}{
			departmentLabel(d.DepartmentCode, d.DepartmentName),
			d.EmployeeCount,
			nullCell(d.BaseSalary),
			nullCell(d.AverageGrossSalary),
			nullCell(d.AverageDeduction),
			nullCell(d.AverageNetSalary),
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		payrollSheet:    employeeRows,
		departmentSheet: departmentRows,
	} {
		if err := writeRows(f, sheet, rows, headerStyle); err != nil {
			return nil, "", apperrors.Internal("write sheet", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.log.Error("write payroll workbook", zap.Error(err))
		return nil, "", apperrors.Internal("write workbook", err)
	}
	return buf, fmt.Sprintf("payroll-%s.xlsx", report.Month[:7]), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rows[0]))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func departmentLabel(code string, name *string) string {
	if name == nil || *name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", *name, code)
}

func nullCell(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return ""
	}
	return d.Decimal.InexactFloat64()
}
