package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "emsapi/internal/errors"
	"emsapi/internal/service"
)

// SalaryHandler exposes salary history CRUD.
type SalaryHandler struct {
	svc service.SalaryService
}

// NewSalaryHandler creates a salary handler.
func NewSalaryHandler(svc service.SalaryService) *SalaryHandler {
	return &SalaryHandler{svc: svc}
}

// SalaryRequest is the create and update body. employeeId and amount may be
// sent as numbers or strings.
type SalaryRequest struct {
	EmployeeID    flexString `json:"employeeId" swaggertype:"string"`
	Amount        flexString `json:"amount" swaggertype:"string"`
	EffectiveDate string     `json:"effectiveDate"`
	EndDate       string     `json:"endDate"`
}

func (r SalaryRequest) input() (service.SalaryInput, error) {
	var employeeID uint
	if s := r.EmployeeID.String(); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return service.SalaryInput{}, apperrors.Validation("Employee ID must be a positive integer")
		}
		employeeID = uint(id)
	}
	return service.SalaryInput{
		EmployeeID:    employeeID,
		Amount:        r.Amount.String(),
		EffectiveDate: r.EffectiveDate,
		EndDate:       r.EndDate,
	}, nil
}

// SalaryCreatedResponse is returned after a salary is created.
type SalaryCreatedResponse struct {
	Message  string `json:"message"`
	SalaryID uint   `json:"salaryId"`
}

// List godoc
// @Summary List salaries with employee names
// @Tags salaries
// @Produce json
// @Success 200 {array} model.SalaryWithEmployee
// @Router /salaries [get]
func (h *SalaryHandler) List(c echo.Context) error {
	salaries, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, salaries)
}

// ListByEmployee godoc
// @Summary Salary history of an employee
// @Tags salaries
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {array} model.Salary
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees/{id}/salaries [get]
func (h *SalaryHandler) ListByEmployee(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	salaries, err := h.svc.ListByEmployee(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, salaries)
}

// Create godoc
// @Summary Create salary
// @Tags salaries
// @Accept json
// @Produce json
// @Param request body SalaryRequest true "Salary"
// @Success 201 {object} SalaryCreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /salaries [post]
func (h *SalaryHandler) Create(c echo.Context) error {
	var req SalaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	id, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, SalaryCreatedResponse{
		Message:  "Salary created successfully",
		SalaryID: id,
	})
}

// Update godoc
// @Summary Update salary
// @Tags salaries
// @Accept json
// @Produce json
// @Param id path int true "Salary ID"
// @Param request body SalaryRequest true "Salary"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /salaries/{id} [put]
func (h *SalaryHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req SalaryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := req.input()
	if err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Salary updated successfully"})
}

// Delete godoc
// @Summary Delete salary
// @Tags salaries
// @Produce json
// @Param id path int true "Salary ID"
// @Success 200 {object} MessageResponse
// @Router /salaries/{id} [delete]
func (h *SalaryHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Salary deleted successfully"})
}
