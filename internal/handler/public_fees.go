package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-registration/internal/model"
	"github.com/iliyamo/conference-registration/internal/pricing"
	"github.com/iliyamo/conference-registration/internal/repository"
)

// FeeHandler exposes the public pricing read side: the live early-bird
// status, the fee table and the fee preview the registration form polls
// while the visitor fills it in.  All endpoints are side-effect free and
// idempotent; none of them may be cached because admins can edit fees and
// periods at any moment.
type FeeHandler struct {
	Resolver *pricing.Resolver
	Fees     *repository.FeeRepo
	Periods  *repository.PeriodRepo
}

func NewFeeHandler(resolver *pricing.Resolver, fees *repository.FeeRepo, periods *repository.PeriodRepo) *FeeHandler {
	return &FeeHandler{Resolver: resolver, Fees: fees, Periods: periods}
}

// EarlyBirdStatus handles GET /v1/early-bird.  It reports whether an
// early-bird window is open right now and, if so, which period.
func (h *FeeHandler) EarlyBirdStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	period, err := h.Periods.ActivePeriod(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if period == nil {
		return c.JSON(http.StatusOK, echo.Map{"is_early_bird": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"is_early_bird": true,
		"period": echo.Map{
			"id":         period.ID,
			"start_date": period.StartDate,
			"end_date":   period.EndDate,
		},
	})
}

// ListFees handles GET /v1/fees and returns the full fee table.
func (h *FeeHandler) ListFees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fees, err := h.Fees.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(fees))
	for _, f := range fees {
		out = append(out, echo.Map{
			"id":                f.ID,
			"registration_type": f.RegistrationType,
			"regular_fee":       f.RegularFee,
			"early_bird_fee":    f.EarlyBirdFee,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// PreviewFee handles GET /v1/fees/preview.  The form calls it with either a
// concrete type (?type=...) or the raw attributes
// (?attending_as=&nationality=&session_type=) and receives the same quote
// the submission handler will compute, so the preview and the persisted
// record cannot disagree.
func (h *FeeHandler) PreviewFee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	now := time.Now().UTC()

	regType := c.QueryParam("type")
	if regType == "" {
		attendingAs := c.QueryParam("attending_as")
		sessionType := c.QueryParam("session_type")
		if attendingAs != model.AttendingPresenter && attendingAs != model.AttendingParticipant {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "attending_as must be PRESENTER or PARTICIPANT"})
		}
		if sessionType != model.SessionOnline && sessionType != model.SessionOffline {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_type must be ONLINE or OFFLINE"})
		}
		regType = pricing.Classify(attendingAs, c.QueryParam("nationality"), sessionType)
	} else if !model.ValidStatus(model.RegistrationTypes, regType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown registration type"})
	}

	quote, err := h.Resolver.QuoteForType(ctx, regType, now)
	if err != nil {
		if errors.Is(err, pricing.ErrFeeNotConfigured) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error": "pricing for this registration type is not configured; please contact the administrator",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, quote)
}
