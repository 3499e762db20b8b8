package devis_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/motiondevis/internal/devis"
)

func newTestRouter(t *testing.T) (http.Handler, *devis.Service) {
	t.Helper()
	svc, err := devis.NewService(context.Background(), &memStore{}, zerolog.Nop())
	require.NoError(t, err)
	h := &devis.Handler{Svc: svc, Validate: validator.New()}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", h.GetCatalog)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.PutSettings)
		r.Get("/quote", h.GetQuote)
		r.Put("/quote", h.PutQuote)
		r.Post("/quote/lines", h.PostLine)
		r.Patch("/quote/lines/{lineID}", h.PatchLine)
		r.Delete("/quote/lines/{lineID}", h.DeleteLine)
		r.Post("/quote/save", h.PostSave)
		r.Post("/quote/reset", h.PostReset)
		r.Get("/devis", h.List)
		r.Get("/devis/{id}", h.Get)
		r.Post("/devis/{id}/duplicate", h.PostDuplicate)
		r.Delete("/devis/{id}", h.Delete)
	})
	return r, svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func dataField(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestGetCatalog(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := doJSON(t, router, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []struct {
		Title          string  `json:"title"`
		EffectivePrice float64 `json:"effectivePrice"`
	}
	dataField(t, rr, &entries)
	require.Len(t, entries, 10)
	require.Equal(t, "Storyboard", entries[0].Title)
	require.InDelta(t, 450, entries[0].EffectivePrice, 0.001)
}

func TestQuoteLineLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/quote/lines", map[string]string{"title": "Storyboard"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var quote devis.Quote
	dataField(t, rr, &quote)
	require.Len(t, quote.Lines, 1)
	lineID := quote.Lines[0].ID

	rr = doJSON(t, router, http.MethodPatch, "/api/v1/quote/lines/"+lineID, map[string]float64{"quantity": 2})
	require.Equal(t, http.StatusOK, rr.Code)
	dataField(t, rr, &quote)
	require.InDelta(t, 900, quote.Totals.Subtotal, 0.001)

	rr = doJSON(t, router, http.MethodDelete, "/api/v1/quote/lines/"+lineID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	dataField(t, rr, &quote)
	require.Empty(t, quote.Lines)
}

func TestPostLineUnknownTitle(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/api/v1/quote/lines", map[string]string{"title": "Hors catalogue"})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostLineMissingTitle(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := doJSON(t, router, http.MethodPost, "/api/v1/quote/lines", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPutQuoteRejectsBadEmail(t *testing.T) {
	router, _ := newTestRouter(t)
	payload := map[string]any{
		"client": map[string]string{"name": "ACME", "email": "not-an-email"},
	}
	rr := doJSON(t, router, http.MethodPut, "/api/v1/quote", payload)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestPutQuoteRecomputesTotals(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/quote/lines", map[string]string{"title": "Storyboard"})
	require.Equal(t, http.StatusCreated, rr.Code)

	payload := map[string]any{
		"client":  map[string]string{"name": "ACME"},
		"project": map[string]string{"videoType": "Explicative"},
		"video":   map[string]any{"duration": 60, "complexity": "avancee", "style": "3d", "feedbackRounds": 1},
	}
	rr = doJSON(t, router, http.MethodPut, "/api/v1/quote", payload)
	require.Equal(t, http.StatusOK, rr.Code)

	var quote devis.Quote
	dataField(t, rr, &quote)
	// 450 base, +12% complexity, +18% style, +3% feedback on the base.
	require.InDelta(t, 450*1.33, quote.Totals.AdjustedSubtotal, 0.001)
}

func TestSaveAndListFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/quote/save", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code, "empty quote is rejected")

	rr = doJSON(t, router, http.MethodPost, "/api/v1/quote/lines", map[string]string{"title": "Storyboard"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/v1/quote/save", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var saved devis.Quote
	dataField(t, rr, &saved)
	require.NotEmpty(t, saved.ID)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/devis", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var quotes []devis.Quote
	dataField(t, rr, &quotes)
	require.Len(t, quotes, 1)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/devis/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodPost, "/api/v1/devis/"+saved.ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	var dup devis.Quote
	dataField(t, rr, &dup)
	require.Equal(t, devis.StatusCopiedDraft, dup.Status)

	rr = doJSON(t, router, http.MethodDelete, "/api/v1/devis/"+saved.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/devis/"+saved.ID, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPutSettingsConvertsCurrency(t *testing.T) {
	router, svc := newTestRouter(t)

	settings := svc.Settings()
	settings.Currency = "MGA"
	settings.ExchangeRate = 4500
	rr := doJSON(t, router, http.MethodPut, "/api/v1/settings", settings)
	require.Equal(t, http.StatusOK, rr.Code)

	var saved struct {
		Currency string  `json:"currency"`
		RateDay  float64 `json:"rateDay"`
	}
	dataField(t, rr, &saved)
	require.Equal(t, "MGA", saved.Currency)
	require.InDelta(t, 450*4500, saved.RateDay, 0.5)
}

func TestPutSettingsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewBufferString("{nope"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
