package analytics

import (
	"net/http"

	"github.com/noah-isme/motiondevis/internal/common"
)

// Handler exposes the analytics read endpoints.
type Handler struct {
	Svc *Service
}

// Overview returns headline figures over the saved quotes.
func (h *Handler) Overview(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_NOT_CONFIGURED", "analytics service not configured", nil)
		return
	}
	overview, err := h.Svc.Overview()
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": overview})
}
