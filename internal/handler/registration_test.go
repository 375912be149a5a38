package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/conference-registration/internal/model"
	"github.com/iliyamo/conference-registration/internal/pricing"
	"github.com/iliyamo/conference-registration/internal/repository"
	"github.com/iliyamo/conference-registration/internal/service"
)

type memStore struct {
	nextID uint64
	err    error
}

func (m *memStore) CreateSubmission(ctx context.Context, sub *repository.Submission) (uint64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	return m.nextID, nil
}

type memPeriods struct{ period *model.EarlyBirdPeriod }

func (m *memPeriods) ActivePeriod(ctx context.Context, now time.Time) (*model.EarlyBirdPeriod, error) {
	return m.period, nil
}

type memFees struct{ rows map[string]model.RegistrationFee }

func (m *memFees) GetByType(ctx context.Context, registrationType string) (*model.RegistrationFee, error) {
	row, ok := m.rows[registrationType]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func testResolver(period *model.EarlyBirdPeriod, rows map[string]model.RegistrationFee) *pricing.Resolver {
	return pricing.NewResolver(&memPeriods{period: period}, &memFees{rows: rows})
}

func allFeesConfigured() map[string]model.RegistrationFee {
	rows := make(map[string]model.RegistrationFee, len(model.RegistrationTypes))
	for i, rt := range model.RegistrationTypes {
		rows[rt] = model.RegistrationFee{ID: uint64(i + 1), RegistrationType: rt, RegularFee: 50000, EarlyBirdFee: 40000}
	}
	return rows
}

func submitBody() string {
	return `{
		"attending_as": "PRESENTER",
		"session_type": "OFFLINE",
		"presentation_category": "ORAL",
		"presenters": [{"name": "Siti Rahma", "nationality": "Indonesia"}],
		"email": "siti@example.ac.id",
		"password": "hunter22",
		"current_status": "MASTER_STUDENT",
		"affiliation": "Universitas Gadjah Mada",
		"topic_preference": "ENGINEERING",
		"presentation_title": "Sensor Networks",
		"paper_submission": "https://drive.example.org/paper.pdf",
		"proof_of_payment": "https://drive.example.org/receipt.jpg",
		"agree_to_terms": true
	}`
}

func postJSON(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/registrations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

func TestSubmitCreated(t *testing.T) {
	svc := service.NewRegistrationService(&memStore{}, testResolver(nil, allFeesConfigured()), nil, zerolog.Nop())
	h := NewRegistrationHandler(svc)

	rec := postJSON(h.Submit, submitBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		ID      uint64        `json:"id"`
		Quote   pricing.Quote `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint64(1), resp.ID)
	assert.Equal(t, model.TypePresenterIndonesiaStudentOffline, resp.Quote.RegistrationType)
	assert.Equal(t, int64(50000), resp.Quote.Fee)
}

func TestSubmitValidationEnvelope(t *testing.T) {
	svc := service.NewRegistrationService(&memStore{}, testResolver(nil, allFeesConfigured()), nil, zerolog.Nop())
	h := NewRegistrationHandler(svc)

	body := strings.Replace(submitBody(), `"agree_to_terms": true`, `"agree_to_terms": false`, 1)
	rec := postJSON(h.Submit, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Error   string            `json:"error"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "agree_to_terms")
}

func TestSubmitUnconfiguredFeeEnvelope(t *testing.T) {
	svc := service.NewRegistrationService(&memStore{}, testResolver(nil, map[string]model.RegistrationFee{}), nil, zerolog.Nop())
	h := NewRegistrationHandler(svc)

	rec := postJSON(h.Submit, submitBody())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestSubmitStoreFailureEnvelope(t *testing.T) {
	svc := service.NewRegistrationService(&memStore{err: context.DeadlineExceeded}, testResolver(nil, allFeesConfigured()), nil, zerolog.Nop())
	h := NewRegistrationHandler(svc)

	rec := postJSON(h.Submit, submitBody())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "registration failed")
}
