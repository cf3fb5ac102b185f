package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter/snapshot"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		LogFile:        filepath.Join(t.TempDir(), "catalog.log"),
		Mode:           config.ModeHTTP,
		HTTPServerAddr: "127.0.0.1:0",
		Theme:          "notty",
		Source: config.Source{
			Endpoint:    "https://example.com/products",
			Timeout:     time.Second,
			MaxAttempts: 1,
		},
	}
}

func TestNewFromSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.SnapshotFile = filepath.Join(t.TempDir(), "products.avro")

	f, err := snapshot.NewFile(cfg.Source.SnapshotFile)
	require.NoError(t, err)
	require.NoError(t, f.WriteProducts(t.Context(), []domain.Product{
		{ID: "1", Title: "Red Shirt", Category: "clothing"},
	}))

	app := New(t.Context(), cfg)
	t.Cleanup(func() { app.Close(t.Context()) })

	require.NoError(t, app.catalog.Load(t.Context()))
	v := app.catalog.View(domain.DefaultFilter())
	assert.Equal(t, domain.StateReady, v.State)
	assert.Equal(t, 1, v.Total)

	logs, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"op":"Catalog.Load"`)
	assert.Contains(t, string(logs), `"snapshot":"`+cfg.Source.SnapshotFile+`"`)
}

func TestNewFromEndpoint(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Timeout = 0

	app := New(t.Context(), cfg)
	t.Cleanup(func() { app.Close(t.Context()) })

	logs, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"endpoint":"https://example.com/products"`)
}

func TestNewFallsDown(t *testing.T) {
	t.Run("MissingCAFile", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Source.CAFile = filepath.Join(t.TempDir(), "none.pem")
		assert.Panics(t, func() { New(t.Context(), cfg) })
	})

	t.Run("UnknownTheme", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Mode = config.ModeTUI
		cfg.Theme = "solarized"
		assert.Panics(t, func() { New(t.Context(), cfg) })
	})
}
