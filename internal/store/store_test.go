package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/motiondevis/internal/devis"
	"github.com/noah-isme/motiondevis/internal/store"
)

func sampleState(t *testing.T) devis.State {
	t.Helper()
	st := devis.DefaultState()
	q := devis.NewQuote(st.Settings.VAT, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	q.ID = "q-1"
	q.Client.Name = "Aina R."
	q.Lines = []devis.Line{{ID: "l-1", Title: "Storyboard", Category: "Pré-prod", Mode: "forfait", Quantity: 1, UnitPrice: 450}}
	q.Recompute()
	st.Quotes = []devis.Quote{q}
	return st
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := store.NewFileStore(dir)
	ctx := context.Background()

	_, err := fs.Load(ctx)
	require.ErrorIs(t, err, devis.ErrNotFound)

	st := sampleState(t)
	require.NoError(t, fs.Save(ctx, st))

	loaded, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, st.Settings, loaded.Settings)
	require.Len(t, loaded.Quotes, 1)
	require.Equal(t, "q-1", loaded.Quotes[0].ID)
	require.InDelta(t, 540, loaded.Quotes[0].Totals.TTC, 0.001)
}

func TestFileStoreCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	fs := store.NewFileStore(dir)
	require.NoError(t, os.WriteFile(fs.Path, []byte("{not json"), 0o644))

	_, err := fs.Load(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, devis.ErrNotFound))
}

func TestFileStoreFixedKey(t *testing.T) {
	fs := store.NewFileStore("/tmp/devis")
	require.Equal(t, filepath.Join("/tmp/devis", "motiondevis-data.json"), fs.Path)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rs := &store.RedisStore{Client: rdb}
	ctx := context.Background()

	_, err = rs.Load(ctx)
	require.ErrorIs(t, err, devis.ErrNotFound)

	st := sampleState(t)
	require.NoError(t, rs.Save(ctx, st))

	loaded, err := rs.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, st.Settings.Currency, loaded.Settings.Currency)
	require.Len(t, loaded.Quotes, 1)

	mr.Set(store.Key, "{broken")
	_, err = rs.Load(ctx)
	require.Error(t, err)
}
