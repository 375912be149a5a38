package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-registration/internal/repository"
)

// ContentHandler serves the read-only site content consumed by the public
// pages: keynote speakers and the conference schedule.  These change only
// when an admin edits them between deploys, so the routes are registered
// behind the response-cache middleware.
type ContentHandler struct {
	Content *repository.ContentRepo
}

func NewContentHandler(content *repository.ContentRepo) *ContentHandler {
	return &ContentHandler{Content: content}
}

// Speakers handles GET /v1/content/speakers.
func (h *ContentHandler) Speakers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	speakers, err := h.Content.Speakers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(speakers))
	for _, s := range speakers {
		out = append(out, echo.Map{
			"id":          s.ID,
			"name":        s.Name,
			"title":       s.Title,
			"affiliation": s.Affiliation,
			"photo_url":   s.PhotoURL,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Schedule handles GET /v1/content/schedule.
func (h *ContentHandler) Schedule(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Content.Schedule(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, it := range items {
		out = append(out, echo.Map{
			"id":        it.ID,
			"day":       it.Day,
			"starts_at": it.StartsAt,
			"ends_at":   it.EndsAt,
			"title":     it.Title,
			"location":  it.Location,
		})
	}
	return c.JSON(http.StatusOK, out)
}
