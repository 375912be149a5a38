package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-registration/internal/pricing"
	"github.com/iliyamo/conference-registration/internal/service"
	"github.com/iliyamo/conference-registration/internal/validation"
)

// RegistrationHandler exposes the public submission endpoint.  The heavy
// lifting (validation, pricing, atomic persistence) lives in the service;
// this layer only binds the payload and shapes the response envelope.
type RegistrationHandler struct {
	Registrations *service.RegistrationService
}

func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Registrations: svc}
}

// Submit handles POST /v1/registrations.  Responses always carry the
// {success, ...} envelope the registration form consumes:
//
//	201 {"success":true,"id":...,"quote":{...}}
//	400 {"success":false,"error":"validation failed","fields":{...}}
//	422 {"success":false,"error":"pricing not configured..."}
//	500 {"success":false,"error":"registration failed, please try again"}
func (h *RegistrationHandler) Submit(c echo.Context) error {
	var req service.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	res, err := h.Registrations.Submit(ctx, req)
	if err != nil {
		var fe validation.FieldErrors
		if errors.As(err, &fe) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"success": false,
				"error":   "validation failed",
				"fields":  fe,
			})
		}
		if errors.Is(err, pricing.ErrFeeNotConfigured) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"success": false,
				"error":   "pricing for this registration type is not configured; please contact the administrator",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "registration failed, please try again",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"id":      res.RegistrationID,
		"quote":   res.Quote,
	})
}
