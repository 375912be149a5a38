package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func callPricing(h echo.HandlerFunc, method, body string, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	_ = h(c)
	return rec
}

func TestUpdateFeeRequiresBothAmounts(t *testing.T) {
	h := &AdminPricingHandler{}

	rec := callPricing(h.UpdateFee, http.MethodPut, `{"regular_fee": 50000}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "required")
}

func TestUpdateFeeRejectsNegativeAmounts(t *testing.T) {
	h := &AdminPricingHandler{}

	rec := callPricing(h.UpdateFee, http.MethodPut, `{"regular_fee": -1, "early_bird_fee": 40000}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non-negative")
}

func TestCreatePeriodRejectsInvertedWindow(t *testing.T) {
	h := &AdminPricingHandler{}

	body := `{"start_date": "2026-03-10T00:00:00Z", "end_date": "2026-03-01T00:00:00Z"}`
	rec := callPricing(h.CreatePeriod, http.MethodPost, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePeriodRequiresBothDates(t *testing.T) {
	h := &AdminPricingHandler{}

	rec := callPricing(h.CreatePeriod, http.MethodPost, `{"start_date": "2026-03-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetPeriodActiveRequiresFlag(t *testing.T) {
	h := &AdminPricingHandler{}

	rec := callPricing(h.SetPeriodActive, http.MethodPatch, `{}`, "id", "2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "is_active")
}
