package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"emsapi/internal/auth"
	apperrors "emsapi/internal/errors"
	"emsapi/internal/service"
)

// UserHandler serves the current user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CurrentUser godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user [get]
func (h *UserHandler) CurrentUser(c echo.Context) error {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return apperrors.ErrUnauthorized
	}
	profile, err := h.svc.CurrentUser(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
