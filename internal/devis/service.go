package devis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/common"
	"github.com/noah-isme/motiondevis/internal/currency"
	"github.com/noah-isme/motiondevis/internal/obs"
)

// Service owns the whole working state: settings, the saved quotes, and the
// scratch quote being edited. Operations run under one mutex and recompute
// totals before returning, so stale totals are never observable.
type Service struct {
	store Store
	log   zerolog.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string

	mu       sync.Mutex
	settings catalog.Settings
	quotes   []Quote
	current  Quote
}

// NewService loads the persisted state and prepares a fresh scratch quote.
// A missing blob is first-run; a corrupt one is logged and reset to
// defaults, never surfaced as a failure.
func NewService(ctx context.Context, store Store, log zerolog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("devis: store is required")
	}
	s := &Service{
		store: store,
		log:   log,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
	state, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("state unreadable, resetting to defaults")
		}
		state = DefaultState()
	}
	state.Settings.Normalize()
	if state.Quotes == nil {
		state.Quotes = []Quote{}
	}
	s.settings = state.Settings
	s.quotes = state.Quotes
	s.current = NewQuote(s.settings.VAT, s.Now())
	return s, nil
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() catalog.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.settings)
}

// SaveSettings replaces the settings atomically. When the currency changes,
// one conversion factor is computed up front and applied to the rates, the
// catalogue overrides, every saved quote, and the scratch quote.
func (s *Service) SaveSettings(ctx context.Context, next catalog.Settings) (catalog.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next.Normalize()
	if from, to := s.settings.Currency, next.Currency; from != to {
		factor := currency.Factor(from, to, next.ExchangeRate)
		next.Convert(factor)
		for i := range s.quotes {
			s.quotes[i].Convert(factor)
		}
		s.current.Convert(factor)
		if obs.CurrencyConversionsTotal != nil {
			obs.CurrencyConversionsTotal.WithLabelValues(from, to).Inc()
		}
		s.log.Info().Str("from", from).Str("to", to).Float64("factor", factor).Msg("currency converted")
	}
	s.settings = next

	// The scratch quote tracks the settings VAT until it is overridden.
	s.current.VAT = next.VAT
	s.current.Recompute()

	if err := s.persist(ctx); err != nil {
		return catalog.Settings{}, err
	}
	return copySettings(s.settings), nil
}

// CatalogEntry is a catalogue service with its effective unit price.
type CatalogEntry struct {
	catalog.Entry
	EffectivePrice float64 `json:"effectivePrice"`
}

// Catalog lists the fixed catalogue with effective prices resolved against
// the current settings overrides.
func (s *Service) Catalog() []CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := catalog.Entries()
	out := make([]CatalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, CatalogEntry{Entry: e, EffectivePrice: s.settings.EffectivePrice(e.Title)})
	}
	return out
}

// Current returns a copy of the scratch quote with up-to-date totals.
func (s *Service) Current() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Details is the editable snapshot of the scratch quote outside its lines.
// A nil VAT falls back to the settings default, matching how the original
// form prefilled the rate.
type Details struct {
	Client         Client
	Project        Project
	Video          Video
	DiscountRate   float64
	DiscountAmount float64
	Urgency        float64
	VAT            *float64
}

// UpdateDetails replaces the scratch quote fields and recomputes.
func (s *Service) UpdateDetails(d Details) Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.Client = d.Client
	s.current.Project = d.Project
	s.current.Video = d.Video
	s.current.DiscountRate = d.DiscountRate
	s.current.DiscountAmount = d.DiscountAmount
	s.current.Urgency = d.Urgency
	if d.VAT != nil {
		s.current.VAT = *d.VAT
	} else {
		s.current.VAT = s.settings.VAT
	}
	s.current.Recompute()
	return s.current.Clone()
}

// AddLine appends a line built from the catalogue entry with the given
// title, pricing it at the effective catalogue price. Copy-on-add: later
// settings edits never touch the line.
func (s *Service) AddLine(title string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := catalog.Lookup(title)
	if !ok {
		return Quote{}, common.NotFound("service inconnu au catalogue", fmt.Errorf("%w: %s", ErrNotFound, title))
	}
	s.current.Lines = append(s.current.Lines, Line{
		ID:        s.NewID(),
		Title:     entry.Title,
		Category:  entry.Category,
		Mode:      entry.Mode,
		Quantity:  entry.Quantity,
		UnitPrice: s.settings.EffectivePrice(entry.Title),
	})
	s.current.Recompute()
	return s.current.Clone(), nil
}

// UpdateLine edits a line's quantity and/or unit price in place.
func (s *Service) UpdateLine(id string, quantity, unitPrice *float64) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current.Lines {
		if s.current.Lines[i].ID != id {
			continue
		}
		if quantity != nil {
			s.current.Lines[i].Quantity = *quantity
		}
		if unitPrice != nil {
			s.current.Lines[i].UnitPrice = *unitPrice
		}
		s.current.Recompute()
		return s.current.Clone(), nil
	}
	return Quote{}, common.NotFound("ligne introuvable", ErrNotFound)
}

// RemoveLine deletes a line by id.
func (s *Service) RemoveLine(id string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current.Lines {
		if s.current.Lines[i].ID == id {
			s.current.Lines = append(s.current.Lines[:i], s.current.Lines[i+1:]...)
			s.current.Recompute()
			return s.current.Clone(), nil
		}
	}
	return Quote{}, common.NotFound("ligne introuvable", ErrNotFound)
}

// Save freezes the scratch quote into the collection: new identity, new
// timestamp, prepend, persist, then reset the scratch. A quote without
// lines is rejected before any mutation.
func (s *Service) Save(ctx context.Context) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.current.Lines) == 0 {
		if obs.QuoteSavesTotal != nil {
			obs.QuoteSavesTotal.WithLabelValues("rejected").Inc()
		}
		return Quote{}, common.Validation("ajoute au moins une prestation")
	}

	frozen := s.current.Clone()
	frozen.ID = s.NewID()
	frozen.CreatedAt = s.Now()
	frozen.Recompute()

	s.quotes = append([]Quote{frozen}, s.quotes...)
	if err := s.persist(ctx); err != nil {
		s.quotes = s.quotes[1:]
		return Quote{}, err
	}
	s.current = NewQuote(s.settings.VAT, s.Now())
	if obs.QuoteSavesTotal != nil {
		obs.QuoteSavesTotal.WithLabelValues("saved").Inc()
	}
	s.log.Info().Str("quote_id", frozen.ID).Float64("ttc", frozen.Totals.TTC).Msg("quote saved")
	return frozen, nil
}

// Reset discards the scratch quote and starts a fresh one.
func (s *Service) Reset() Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = NewQuote(s.settings.VAT, s.Now())
	return s.current.Clone()
}

// Quotes lists saved quotes, most recent first. A positive limit caps the
// result, zero means all.
func (s *Service) Quotes(limit int) []Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.quotes)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Quote, 0, n)
	for _, q := range s.quotes[:n] {
		out = append(out, q.Clone())
	}
	return out
}

// Get returns a saved quote by id.
func (s *Service) Get(id string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotes {
		if q.ID == id {
			return q.Clone(), nil
		}
	}
	return Quote{}, common.NotFound("devis introuvable", ErrNotFound)
}

// Duplicate clones a saved quote under a new identity and marks it as a
// copied draft.
func (s *Service) Duplicate(ctx context.Context, id string) (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotes {
		if q.ID != id {
			continue
		}
		clone := q.Clone()
		clone.ID = s.NewID()
		clone.CreatedAt = s.Now()
		clone.Status = StatusCopiedDraft
		s.quotes = append([]Quote{clone}, s.quotes...)
		if err := s.persist(ctx); err != nil {
			s.quotes = s.quotes[1:]
			return Quote{}, err
		}
		return clone, nil
	}
	return Quote{}, common.NotFound("devis introuvable", ErrNotFound)
}

// Delete removes a saved quote by id. Confirmation is the caller's concern;
// the operation itself is unconditional.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			s.quotes = append(s.quotes[:i], s.quotes[i+1:]...)
			return s.persist(ctx)
		}
	}
	return common.NotFound("devis introuvable", ErrNotFound)
}

// Snapshot returns the full persisted document, for export and seeding.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	quotes := make([]Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		quotes = append(quotes, q.Clone())
	}
	return State{Settings: copySettings(s.settings), Quotes: quotes}
}

// persist writes the full snapshot. Caller holds the lock.
func (s *Service) persist(ctx context.Context) error {
	st := State{Settings: s.settings, Quotes: s.quotes}
	if err := s.store.Save(ctx, st); err != nil {
		s.log.Error().Err(err).Msg("persist state")
		return common.Internal("échec de la sauvegarde", err)
	}
	return nil
}

func copySettings(s catalog.Settings) catalog.Settings {
	out := s
	if s.CatalogPrices != nil {
		out.CatalogPrices = make(map[string]float64, len(s.CatalogPrices))
		for k, v := range s.CatalogPrices {
			out.CatalogPrices[k] = v
		}
	}
	return out
}
