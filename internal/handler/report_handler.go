package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"emsapi/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the aggregate reports.
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a report handler.
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Departments godoc
// @Summary Salary summary per department
// @Description Aggregates each employee's current salary. Aggregates are null when nobody in the department has one.
// @Tags reports
// @Produce json
// @Success 200 {array} model.DepartmentSummary
// @Router /reports/departments [get]
func (h *ReportHandler) Departments(c echo.Context) error {
	rows, err := h.svc.DepartmentSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// MonthlyPayroll godoc
// @Summary Monthly payroll per employee
// @Description Gross, deduction and net pay of every employee paid in the month.
// @Tags reports
// @Produce json
// @Param month query string false "Month as YYYY-MM-01 or YYYY-MM, defaults to the current month"
// @Success 200 {array} model.PayrollLine
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/monthly-payroll [get]
func (h *ReportHandler) MonthlyPayroll(c echo.Context) error {
	report, err := h.svc.MonthlyPayroll(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.Employees)
}

// DepartmentPayroll godoc
// @Summary Monthly payroll per department
// @Description Base salary and average gross, deduction and net pay per department for the month.
// @Tags reports
// @Produce json
// @Param month query string false "Month as YYYY-MM-01 or YYYY-MM, defaults to the current month"
// @Success 200 {array} model.DepartmentPayroll
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/monthly-payroll/departments [get]
func (h *ReportHandler) DepartmentPayroll(c echo.Context) error {
	report, err := h.svc.MonthlyPayroll(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.Departments)
}

// ExportMonthlyPayroll godoc
// @Summary Monthly payroll as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string false "Month as YYYY-MM-01 or YYYY-MM"
// @Success 200 {file} file
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports/monthly-payroll/export [get]
func (h *ReportHandler) ExportMonthlyPayroll(c echo.Context) error {
	buf, filename, err := h.svc.ExportMonthlyPayroll(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
