package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// Membership checks run before any database access, so these cases work
// against a handler with no repository wired.
func patchStatus(h echo.HandlerFunc, id, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = h(c)
	return rec
}

func TestUpdatePaymentStatusRejectsUnknownStatus(t *testing.T) {
	h := &AdminRegistrationHandler{}

	rec := patchStatus(h.UpdatePaymentStatus, "1", `{"status":"PAID"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid payment status")

	// Paper statuses do not leak into the payment workflow.
	rec = patchStatus(h.UpdatePaymentStatus, "1", `{"status":"ACCEPTED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePaperStatusRejectsUnknownStatus(t *testing.T) {
	h := &AdminRegistrationHandler{}

	rec := patchStatus(h.UpdatePaperStatus, "1", `{"status":"CONFIRMED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid paper status")
}

func TestUpdateReviewStatusRejectsUnknownStatus(t *testing.T) {
	h := &AdminRegistrationHandler{}

	rec := patchStatus(h.UpdateReviewStatus, "1", `{"status":"UNDER_REVIEW"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid review status")
}

func TestStatusRoutesRejectBadID(t *testing.T) {
	h := &AdminRegistrationHandler{}

	for _, id := range []string{"0", "-3", "abc", ""} {
		rec := patchStatus(h.UpdatePaymentStatus, id, `{"status":"CONFIRMED"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "id=%q", id)
	}
}
