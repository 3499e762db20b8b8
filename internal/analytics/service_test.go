package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/motiondevis/internal/analytics"
	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/devis"
	"github.com/noah-isme/motiondevis/internal/pricing"
)

type stubSource struct {
	quotes   []devis.Quote
	settings catalog.Settings
}

func (s stubSource) Quotes(int) []devis.Quote   { return s.quotes }
func (s stubSource) Settings() catalog.Settings { return s.settings }

func TestOverviewAggregates(t *testing.T) {
	quotes := []devis.Quote{
		{
			Client:  devis.Client{Name: "ACME"},
			Project: devis.Project{VideoType: "Explicative"},
			Status:  devis.StatusPending,
			Totals:  pricing.Totals{TTC: 540},
		},
		{
			Client:  devis.Client{Name: "acme "},
			Project: devis.Project{VideoType: "Corporate"},
			Status:  devis.StatusCopiedDraft,
			Totals:  pricing.Totals{TTC: 1200},
		},
		{
			Client:  devis.Client{Name: "Studio Nord"},
			Project: devis.Project{VideoType: "Explicative"},
			Status:  devis.StatusPending,
			Totals:  pricing.Totals{TTC: 260},
		},
	}
	svc := &analytics.Service{Src: stubSource{quotes: quotes, settings: catalog.DefaultSettings()}}

	overview, err := svc.Overview()
	require.NoError(t, err)

	require.Equal(t, 3, overview.TotalQuotes)
	require.Equal(t, 2, overview.PendingQuotes)
	require.Equal(t, 2, overview.DistinctClients)
	require.InDelta(t, 2000, overview.TotalTTC, 0.001)
	require.InDelta(t, 2000.0/3.0, overview.AverageTTC, 0.001)
	require.Equal(t, 2, overview.ByVideoType["Explicative"])
	require.Equal(t, 1, overview.ByStatus[devis.StatusCopiedDraft])
	require.Equal(t, "€", overview.Currency)
}

func TestOverviewEmpty(t *testing.T) {
	svc := &analytics.Service{Src: stubSource{settings: catalog.DefaultSettings()}}

	overview, err := svc.Overview()
	require.NoError(t, err)
	require.Zero(t, overview.TotalQuotes)
	require.Zero(t, overview.AverageTTC)
	require.Empty(t, overview.ByVideoType)
}

func TestOverviewUnconfigured(t *testing.T) {
	var svc *analytics.Service
	_, err := svc.Overview()
	require.Error(t, err)
}
