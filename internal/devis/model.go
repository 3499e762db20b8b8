// Package devis owns the quote entity and its lifecycle: the in-progress
// scratch quote, the saved collection, and the settings that seed new
// quotes. All monetary computation is delegated to the pricing engine.
package devis

import (
	"context"
	"errors"
	"time"

	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/currency"
	"github.com/noah-isme/motiondevis/internal/pricing"
)

// Quote statuses. Anything beyond these two markers is free-form.
const (
	StatusPending     = "En attente"
	StatusCopiedDraft = "Brouillon copié"
)

// ErrNotFound marks a lookup miss in the persisted state.
var ErrNotFound = errors.New("not found")

// Client identifies the customer of a quote.
type Client struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// Project describes the commissioned video project.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoType   string `json:"videoType"`
	Deadline    string `json:"deadline"`
}

// Video carries the attributes driving the dynamic price adjustments.
type Video struct {
	Duration       float64 `json:"duration"`
	Complexity     string  `json:"complexity"`
	Style          string  `json:"style"`
	FeedbackRounds int     `json:"feedbackRounds"`
}

// Line is one priced service of a quote. It is owned exclusively by its
// quote; editing a catalogue price never touches already-added lines.
type Line struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Mode      string  `json:"mode"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Quote is the full working or saved record. Totals are always derived,
// never edited by hand.
type Quote struct {
	ID             string         `json:"id,omitempty"`
	Client         Client         `json:"client"`
	Project        Project        `json:"project"`
	Video          Video          `json:"video"`
	Lines          []Line         `json:"lines"`
	DiscountRate   float64        `json:"discountRate"`
	DiscountAmount float64        `json:"discountAmount"`
	Urgency        float64        `json:"urgency"`
	VAT            float64        `json:"vat"`
	Totals         pricing.Totals `json:"totals"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// NewQuote returns an empty pending quote. The VAT rate is a snapshot of
// the settings default; it may diverge per quote afterwards.
func NewQuote(defaultVAT float64, now time.Time) Quote {
	q := Quote{
		Project:   Project{VideoType: "Explicative"},
		Video:     Video{Duration: 60, Complexity: "standard", Style: "flat"},
		Lines:     []Line{},
		VAT:       defaultVAT,
		Status:    StatusPending,
		CreatedAt: now,
	}
	q.Recompute()
	return q
}

// Recompute refreshes the derived totals from the quote's raw inputs.
func (q *Quote) Recompute() {
	lines := make([]pricing.Line, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, pricing.Line{
			Title:     l.Title,
			Category:  l.Category,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	q.Totals = pricing.Compute(pricing.Input{
		Lines: lines,
		Video: pricing.Video{
			Duration:       q.Video.Duration,
			Complexity:     pricing.ParseComplexity(q.Video.Complexity),
			Style:          pricing.ParseStyle(q.Video.Style),
			FeedbackRounds: q.Video.FeedbackRounds,
		},
		VideoType:      pricing.ParseVideoType(q.Project.VideoType),
		DiscountRate:   q.DiscountRate,
		DiscountAmount: q.DiscountAmount,
		Urgency:        q.Urgency,
		VAT:            q.VAT,
	})
}

// Clone returns a deep copy of the quote.
func (q Quote) Clone() Quote {
	out := q
	out.Lines = make([]Line, len(q.Lines))
	copy(out.Lines, q.Lines)
	out.Totals.PerCategory = make(map[string]float64, len(q.Totals.PerCategory))
	for k, v := range q.Totals.PerCategory {
		out.Totals.PerCategory[k] = v
	}
	out.Totals.Adjustments = append([]pricing.Adjustment(nil), q.Totals.Adjustments...)
	return out
}

// Convert scales every line unit price and the flat discount with the
// factor, rounding to the nearest integer unit, then recomputes the totals
// so percentages reapply to the converted amounts.
func (q *Quote) Convert(factor float64) {
	for i := range q.Lines {
		q.Lines[i].UnitPrice = currency.Convert(q.Lines[i].UnitPrice, factor)
	}
	q.DiscountAmount = currency.Convert(q.DiscountAmount, factor)
	q.Recompute()
}

// State is the whole persisted document: settings plus the saved quotes.
type State struct {
	Settings catalog.Settings `json:"settings"`
	Quotes   []Quote          `json:"quotes"`
}

// DefaultState is the first-run document.
func DefaultState() State {
	return State{Settings: catalog.DefaultSettings(), Quotes: []Quote{}}
}

// Store persists the state as a single snapshot blob. Implementations
// return ErrNotFound when no blob exists yet.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, st State) error
}
