package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emsapi/internal/service"
)

// EmployeeHandler exposes employee CRUD.
type EmployeeHandler struct {
	svc service.EmployeeService
}

// NewEmployeeHandler creates an employee handler.
func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// EmployeeRequest is the create and update body. hireDate is YYYY-MM-DD.
type EmployeeRequest struct {
	FirstName  string `json:"firstName" validate:"max=50"`
	LastName   string `json:"lastName" validate:"max=50"`
	Email      string `json:"email" validate:"max=100"`
	Phone      string `json:"phone" validate:"max=20"`
	Address    string `json:"address" validate:"max=255"`
	Position   string `json:"position" validate:"max=100"`
	Department string `json:"department" validate:"max=50"`
	HireDate   string `json:"hireDate"`
}

func (r EmployeeRequest) input() service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Position:   r.Position,
		Department: r.Department,
		HireDate:   r.HireDate,
	}
}

// EmployeeCreatedResponse is returned after an employee is created.
type EmployeeCreatedResponse struct {
	Message    string `json:"message"`
	EmployeeID uint   `json:"employeeId"`
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} model.Employee
// @Failure 401 {object} errors.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}

// Get godoc
// @Summary Get employee by id
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} model.Employee
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	employee, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Create godoc
// @Summary Create employee
// @Tags employees
// @Accept json
// @Produce json
// @Param request body EmployeeRequest true "Employee"
// @Success 201 {object} EmployeeCreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req EmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := h.svc.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, EmployeeCreatedResponse{
		Message:    "Employee created successfully",
		EmployeeID: id,
	})
}

// Update godoc
// @Summary Update employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body EmployeeRequest true "Employee"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req EmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), id, req.input()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Employee updated successfully"})
}

// Delete godoc
// @Summary Delete employee and its salaries
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Employee deleted successfully"})
}
