package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-registration/internal/repository"
)

// AdminPricingHandler serves the price-list editor and the early-bird
// period editor.  Fee edits become visible to the next quote immediately;
// period creation is additive and never deactivates older periods, which is
// why the resolver's latest-end-date tie-break exists.
type AdminPricingHandler struct {
	Fees    *repository.FeeRepo
	Periods *repository.PeriodRepo
}

func NewAdminPricingHandler(fees *repository.FeeRepo, periods *repository.PeriodRepo) *AdminPricingHandler {
	return &AdminPricingHandler{Fees: fees, Periods: periods}
}

type feeUpdateReq struct {
	RegularFee   *int64 `json:"regular_fee"`
	EarlyBirdFee *int64 `json:"early_bird_fee"`
}

// UpdateFee handles PUT /v1/admin/fees/:id.  Both amounts must be
// non-negative; earlyBirdFee greater than regularFee is allowed on purpose.
func (h *AdminPricingHandler) UpdateFee(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fee id"})
	}
	var req feeUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RegularFee == nil || req.EarlyBirdFee == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "regular_fee and early_bird_fee are required"})
	}
	if *req.RegularFee < 0 || *req.EarlyBirdFee < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fees must be non-negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Fees.UpdateFees(ctx, id, *req.RegularFee, *req.EarlyBirdFee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "fee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

type periodCreateReq struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  *bool     `json:"is_active"`
}

// CreatePeriod handles POST /v1/admin/periods.  New periods default to
// active; existing periods are left untouched.
func (h *AdminPricingHandler) CreatePeriod(c echo.Context) error {
	var req periodCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date and end_date are required"})
	}
	if req.EndDate.Before(req.StartDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not be before start_date"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Periods.Create(ctx, req.StartDate.UTC(), req.EndDate.UTC(), active)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}

// ListPeriods handles GET /v1/admin/periods.
func (h *AdminPricingHandler) ListPeriods(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	periods, err := h.Periods.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(periods))
	for _, p := range periods {
		out = append(out, echo.Map{
			"id":         p.ID,
			"start_date": p.StartDate,
			"end_date":   p.EndDate,
			"is_active":  p.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type periodActiveReq struct {
	IsActive *bool `json:"is_active"`
}

// SetPeriodActive handles PATCH /v1/admin/periods/:id.
func (h *AdminPricingHandler) SetPeriodActive(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid period id"})
	}
	var req periodActiveReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "is_active is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Periods.SetActive(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "period not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id, "is_active": *req.IsActive})
}
