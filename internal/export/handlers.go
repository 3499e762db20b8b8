package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/noah-isme/motiondevis/internal/common"
	"github.com/noah-isme/motiondevis/internal/devis"
	"github.com/noah-isme/motiondevis/internal/obs"
)

// JSONFilename is the download name of the full JSON backup.
const JSONFilename = "motiondevis-devis.json"

// Handler serves the export endpoints.
type Handler struct {
	Svc *devis.Service
	Gen PDFGenerator
	Log zerolog.Logger
}

// JSON streams every saved quote as a pretty-printed JSON attachment.
func (h *Handler) JSON(w http.ResponseWriter, _ *http.Request) {
	quotes := h.Svc.Quotes(0)
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		common.WriteAppError(w, common.Internal("échec de l'export", err))
		return
	}
	if obs.ExportsTotal != nil {
		obs.ExportsTotal.WithLabelValues("json").Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", JSONFilename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// PDF renders one saved quote as a downloadable PDF.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	quote, err := h.Svc.Get(id)
	if err != nil {
		common.WriteAppError(w, err)
		return
	}
	data, err := h.Gen.Generate(quote, h.Svc.Settings())
	if err != nil {
		h.Log.Error().Err(err).Str("devis_id", id).Msg("render quote pdf")
		common.WriteAppError(w, common.Internal("échec de la génération du PDF", err))
		return
	}
	if obs.ExportsTotal != nil {
		obs.ExportsTotal.WithLabelValues("pdf").Inc()
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "devis-"+id+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
