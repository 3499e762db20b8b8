package pricing

import (
	"fmt"
	"math"
)

// Surcharge parameters for the dynamic adjustments. Each adjustment is an
// independent fraction of the same base subtotal; they are summed, never
// compounded.
const (
	durationIncluded  = 60.0
	durationBlockSecs = 30.0
	durationBlockRate = 0.08
	feedbackRoundRate = 0.03
)

// Line is a priced quote line.
type Line struct {
	Title     string
	Category  string
	Quantity  float64
	UnitPrice float64
}

// Total returns quantity times unit price. Negative inputs flow through
// unvalidated; rejecting them is a presentation concern.
func (l Line) Total() float64 {
	return l.Quantity * l.UnitPrice
}

// Video groups the attributes that drive the dynamic adjustments.
type Video struct {
	Duration       float64
	Complexity     Complexity
	Style          Style
	FeedbackRounds int
}

// Input is everything the engine needs to price a quote.
type Input struct {
	Lines          []Line
	Video          Video
	VideoType      VideoType
	DiscountRate   float64 // percent of the adjusted subtotal
	DiscountAmount float64 // flat, in currency units
	Urgency        float64 // fraction, 0.1 = +10%
	VAT            float64 // percent
}

// Adjustment is one labeled entry of the dynamic breakdown.
type Adjustment struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Totals is the full monetary breakdown of a quote. It is a pure projection
// of the engine input and never mutated by hand.
type Totals struct {
	PerCategory      map[string]float64 `json:"perCategory"`
	Subtotal         float64            `json:"subtotal"`
	Adjustments      []Adjustment       `json:"adjustments,omitempty"`
	DynamicExtra     float64            `json:"dynamicExtra"`
	AdjustedSubtotal float64            `json:"adjustedSubtotal"`
	UrgencyAmount    float64            `json:"urgencyAmount"`
	DiscountTotal    float64            `json:"discountTotal"`
	HT               float64            `json:"ht"`
	VATAmount        float64            `json:"vatAmount"`
	TTC              float64            `json:"ttc"`
}

// Compute prices a quote. The steps run in a fixed order, each feeding the
// next: category subtotals, dynamic adjustments, urgency, discounts, VAT.
// Only the reported HT and TTC are clamped at zero; intermediate values may
// go negative when discounts exceed the subtotal.
func Compute(in Input) Totals {
	perCategory := map[string]float64{}
	var subtotal float64
	for _, line := range in.Lines {
		total := line.Total()
		subtotal += total
		perCategory[line.Category] += total
	}

	adjustments, dynamicExtra := dynamicAdjustments(subtotal, in.Video, in.VideoType)
	adjusted := subtotal + dynamicExtra

	urgencyAmount := adjusted * in.Urgency
	discountTotal := adjusted*(in.DiscountRate/100) + in.DiscountAmount

	ht := adjusted + urgencyAmount - discountTotal
	if ht < 0 {
		ht = 0
	}
	vatAmount := ht * (in.VAT / 100)
	ttc := ht + vatAmount
	if ttc < 0 {
		ttc = 0
	}

	return Totals{
		PerCategory:      perCategory,
		Subtotal:         subtotal,
		Adjustments:      adjustments,
		DynamicExtra:     dynamicExtra,
		AdjustedSubtotal: adjusted,
		UrgencyAmount:    urgencyAmount,
		DiscountTotal:    discountTotal,
		HT:               ht,
		VATAmount:        vatAmount,
		TTC:              ttc,
	}
}

// dynamicAdjustments computes every video surcharge as a fraction of the
// same base subtotal. Zero-weight matches are omitted from the breakdown.
func dynamicAdjustments(subtotal float64, video Video, videoType VideoType) ([]Adjustment, float64) {
	var entries []Adjustment
	var extra float64

	add := func(label string, amount float64) {
		entries = append(entries, Adjustment{Label: label, Amount: amount})
		extra += amount
	}

	if video.Duration > durationIncluded {
		blocks := math.Floor((video.Duration-durationIncluded)/durationBlockSecs) + 1
		add(fmt.Sprintf("Durée (%d blocs de 30s)", int(blocks)), subtotal*blocks*durationBlockRate)
	}
	if w := video.Complexity.Weight(); w != 0 {
		add(fmt.Sprintf("Complexité (%s)", video.Complexity), subtotal*w)
	}
	if w := video.Style.Weight(); w != 0 {
		add(fmt.Sprintf("Style (%s)", video.Style), subtotal*w)
	}
	if w := videoType.Weight(); w != 0 {
		add(fmt.Sprintf("Type de vidéo (%s)", videoType), subtotal*w)
	}
	if video.FeedbackRounds > 0 {
		add(fmt.Sprintf("Retours client (%d)", video.FeedbackRounds),
			subtotal*float64(video.FeedbackRounds)*feedbackRoundRate)
	}

	return entries, extra
}
