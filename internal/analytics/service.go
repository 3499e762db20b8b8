// Package analytics derives read-only summary figures from the saved
// quotes. Everything is computed on demand from the in-memory session.
package analytics

import (
	"fmt"
	"strings"

	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/devis"
)

// Source exposes the session data the summaries are computed from.
type Source interface {
	Quotes(limit int) []devis.Quote
	Settings() catalog.Settings
}

// Overview aggregates the saved quotes into headline figures.
type Overview struct {
	TotalQuotes     int            `json:"totalQuotes"`
	PendingQuotes   int            `json:"pendingQuotes"`
	DistinctClients int            `json:"distinctClients"`
	TotalTTC        float64        `json:"totalTTC"`
	AverageTTC      float64        `json:"averageTTC"`
	ByVideoType     map[string]int `json:"byVideoType"`
	ByStatus        map[string]int `json:"byStatus"`
	Currency        string         `json:"currency"`
}

// Service computes summaries over the quote collection.
type Service struct {
	Src Source
}

// Overview walks every saved quote once and aggregates the figures.
func (s *Service) Overview() (Overview, error) {
	if s == nil || s.Src == nil {
		return Overview{}, fmt.Errorf("analytics service not configured")
	}
	quotes := s.Src.Quotes(0)
	out := Overview{
		TotalQuotes: len(quotes),
		ByVideoType: map[string]int{},
		ByStatus:    map[string]int{},
		Currency:    s.Src.Settings().Currency,
	}
	clients := map[string]struct{}{}
	for _, q := range quotes {
		if q.Status == devis.StatusPending {
			out.PendingQuotes++
		}
		if name := strings.TrimSpace(strings.ToLower(q.Client.Name)); name != "" {
			clients[name] = struct{}{}
		}
		if vt := strings.TrimSpace(q.Project.VideoType); vt != "" {
			out.ByVideoType[vt]++
		}
		if st := strings.TrimSpace(q.Status); st != "" {
			out.ByStatus[st]++
		}
		out.TotalTTC += q.Totals.TTC
	}
	out.DistinctClients = len(clients)
	if out.TotalQuotes > 0 {
		out.AverageTTC = out.TotalTTC / float64(out.TotalQuotes)
	}
	return out, nil
}
