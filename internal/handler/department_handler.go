package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emsapi/internal/service"
)

// DepartmentHandler exposes department CRUD keyed by code.
type DepartmentHandler struct {
	svc service.DepartmentService
}

// NewDepartmentHandler creates a department handler.
func NewDepartmentHandler(svc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{svc: svc}
}

// DepartmentRequest is the create and update body. On update the code in
// the path is used.
type DepartmentRequest struct {
	Code        string     `json:"department_code" validate:"max=20"`
	Name        string     `json:"department_name" validate:"max=100"`
	GrossSalary flexString `json:"gross_salary" swaggertype:"string"`
}

func (r DepartmentRequest) input() service.DepartmentInput {
	return service.DepartmentInput{
		Code:        r.Code,
		Name:        r.Name,
		GrossSalary: r.GrossSalary.String(),
	}
}

// DepartmentCreatedResponse is returned after a department is created.
type DepartmentCreatedResponse struct {
	Message        string `json:"message"`
	DepartmentCode string `json:"departmentCode"`
}

// List godoc
// @Summary List departments
// @Tags departments
// @Produce json
// @Success 200 {array} model.Department
// @Router /departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	departments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, departments)
}

// Get godoc
// @Summary Get department by code
// @Tags departments
// @Produce json
// @Param code path string true "Department code"
// @Success 200 {object} model.Department
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{code} [get]
func (h *DepartmentHandler) Get(c echo.Context) error {
	department, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, department)
}

// Create godoc
// @Summary Create department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body DepartmentRequest true "Department"
// @Success 201 {object} DepartmentCreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	code, err := h.svc.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, DepartmentCreatedResponse{
		Message:        "Department created successfully",
		DepartmentCode: code,
	})
}

// Update godoc
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Param code path string true "Department code"
// @Param request body DepartmentRequest true "Department"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /departments/{code} [put]
func (h *DepartmentHandler) Update(c echo.Context) error {
	var req DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), c.Param("code"), req.input()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Department updated successfully"})
}

// Delete godoc
// @Summary Delete department
// @Description Refused while employees are assigned to the department.
// @Tags departments
// @Produce json
// @Param code path string true "Department code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /departments/{code} [delete]
func (h *DepartmentHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Department deleted successfully"})
}
