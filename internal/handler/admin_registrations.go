package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/conference-registration/internal/model"
	"github.com/iliyamo/conference-registration/internal/queue"
	"github.com/iliyamo/conference-registration/internal/repository"
	"github.com/iliyamo/conference-registration/internal/service"
)

// AdminRegistrationHandler serves the dashboard: registration listing, the
// three independent status workflows (payment, paper, abstract review),
// deletion and the CSV export.  All routes sit behind RequireRole(ADMIN);
// status updates validate set membership only, any-to-any transitions are
// allowed.
type AdminRegistrationHandler struct {
	Registrations *repository.RegistrationRepo
	Events        *service.Publisher // nil disables event publishing
	Log           zerolog.Logger
}

func NewAdminRegistrationHandler(regs *repository.RegistrationRepo, events *service.Publisher, log zerolog.Logger) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{Registrations: regs, Events: events, Log: log}
}

// List handles GET /v1/admin/registrations.
func (h *AdminRegistrationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	details, err := h.Registrations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if details == nil {
		details = []repository.Detail{}
	}
	return c.JSON(http.StatusOK, details)
}

type statusReq struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// UpdatePaymentStatus handles PATCH /v1/admin/registrations/:id/payment-status.
func (h *AdminRegistrationHandler) UpdatePaymentStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(model.PaymentStatuses, req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Registrations.UpdatePaymentStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if h.Events != nil {
		ev := queue.PaymentStatusChangedEvent{
			RegistrationID: id,
			NewStatus:      req.Status,
			ChangedAt:      time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Events.PaymentStatusChanged(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Uint64("registration_id", id).Msg("publish payment.status.changed failed")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id, "payment_status": req.Status})
}

// UpdatePaperStatus handles PATCH /v1/admin/registrations/:id/paper-status.
// The optional comment travels with the status so reviewers can explain a
// REVISION_REQUESTED in one call.
func (h *AdminRegistrationHandler) UpdatePaperStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(model.PaperStatuses, req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid paper status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Registrations.UpdatePaperStatus(ctx, id, req.Status, req.Comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "presenter registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id, "paper_status": req.Status})
}

// UpdateReviewStatus handles PATCH /v1/admin/registrations/:id/review-status
// for the abstract review workflow.
func (h *AdminRegistrationHandler) UpdateReviewStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatus(model.ReviewStatuses, req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Registrations.UpdateReviewStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "presenter registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id, "review_status": req.Status})
}

// Delete handles DELETE /v1/admin/registrations/:id.
func (h *AdminRegistrationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Registrations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportPapers handles GET /v1/admin/registrations/export.  It streams the
// presenter registrations as CSV with the same columns the dashboard's
// manual export produced: ID, presenters, email, title, paper URL, paper
// status, comment.  Read-only projection; there is no CSV import.
func (h *AdminRegistrationHandler) ExportPapers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	rows, err := h.Registrations.PaperExport(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	filename := fmt.Sprintf("papers-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"ID", "Presenters", "Email", "Presentation Title", "Paper URL", "Paper Status", "Comment"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			strconv.FormatUint(row.RegistrationID, 10),
			row.Presenters,
			row.Email,
			row.PresentationTitle,
			row.PaperSubmission,
			row.PaperStatus,
			row.Comment,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return id, nil
}
