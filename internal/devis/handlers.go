package devis

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/common"
)

// Handler wires the quote lifecycle to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type detailsPayload struct {
	Client struct {
		Name    string `json:"name"`
		Company string `json:"company"`
		Email   string `json:"email" validate:"omitempty,email"`
	} `json:"client"`
	Project struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoType   string `json:"videoType"`
		Deadline    string `json:"deadline"`
	} `json:"project"`
	Video struct {
		Duration       float64 `json:"duration"`
		Complexity     string  `json:"complexity"`
		Style          string  `json:"style"`
		FeedbackRounds int     `json:"feedbackRounds"`
	} `json:"video"`
	DiscountRate   float64  `json:"discountRate"`
	DiscountAmount float64  `json:"discountAmount"`
	Urgency        float64  `json:"urgency"`
	VAT            *float64 `json:"vat"`
}

// GetCatalog handles GET /api/v1/catalog.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Catalog()})
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Settings()})
}

// PutSettings handles PUT /api/v1/settings: atomic replacement, with a
// conversion pass when the currency changed.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	var payload catalog.Settings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "corps de requête invalide", nil)
		return
	}
	saved, err := h.Svc.SaveSettings(r.Context(), payload)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": saved})
}

// GetQuote handles GET /api/v1/quote (the scratch quote).
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Current()})
}

// PutQuote handles PUT /api/v1/quote: replaces client, project, video and
// adjustment fields of the scratch quote and returns the recomputed totals.
func (h *Handler) PutQuote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	var payload detailsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "corps de requête invalide", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(payload); err != nil {
			common.JSONError(w, http.StatusUnprocessableEntity, "VALIDATION", "email client invalide", nil)
			return
		}
	}
	quote := h.Svc.UpdateDetails(Details{
		Client:         Client(payload.Client),
		Project:        Project(payload.Project),
		Video:          Video(payload.Video),
		DiscountRate:   payload.DiscountRate,
		DiscountAmount: payload.DiscountAmount,
		Urgency:        payload.Urgency,
		VAT:            payload.VAT,
	})
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// PostLine handles POST /api/v1/quote/lines.
func (h *Handler) PostLine(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Title == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "titre de prestation requis", nil)
		return
	}
	quote, err := h.Svc.AddLine(payload.Title)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": quote})
}

// PatchLine handles PATCH /api/v1/quote/lines/{lineID}.
func (h *Handler) PatchLine(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	var payload struct {
		Quantity  *float64 `json:"quantity"`
		UnitPrice *float64 `json:"unitPrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "corps de requête invalide", nil)
		return
	}
	quote, err := h.Svc.UpdateLine(chi.URLParam(r, "lineID"), payload.Quantity, payload.UnitPrice)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// DeleteLine handles DELETE /api/v1/quote/lines/{lineID}.
func (h *Handler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	quote, err := h.Svc.RemoveLine(chi.URLParam(r, "lineID"))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// PostSave handles POST /api/v1/quote/save.
func (h *Handler) PostSave(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	quote, err := h.Svc.Save(r.Context())
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": quote})
}

// PostReset handles POST /api/v1/quote/reset.
func (h *Handler) PostReset(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Reset()})
}

// List handles GET /api/v1/devis with an optional ?limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	limit := common.AtoiDefault(r.URL.Query().Get("limit"), 0)
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Svc.Quotes(limit)})
}

// Get handles GET /api/v1/devis/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	quote, err := h.Svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": quote})
}

// PostDuplicate handles POST /api/v1/devis/{id}/duplicate.
func (h *Handler) PostDuplicate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	quote, err := h.Svc.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": quote})
}

// Delete handles DELETE /api/v1/devis/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "devis service not configured", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.WriteAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"status": "deleted"}})
}

