package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemap/internal/pkg/tracing"
)

// stubTracing swaps the tracer setup for one that counts shutdowns.
func stubTracing(t *testing.T) *int {
	t.Helper()
	shutdowns := 0
	original := initTracing
	initTracing = func(context.Context, zerolog.Logger, tracing.Config) (tracing.ShutdownFunc, error) {
		return func(context.Context) error {
			shutdowns++
			return nil
		}, nil
	}
	t.Cleanup(func() { initTracing = original })
	return &shutdowns
}

func setEnv(t *testing.T, databaseURL string) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DATABASE_URL", databaseURL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_ADDR", "")
}

func TestNewServer_DatabaseFailureShutsDownTracing(t *testing.T) {
	shutdowns := stubTracing(t)
	setEnv(t, "mysql://localhost/coursemap")

	srv, err := NewServer(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to setup database")
	assert.Nil(t, srv)
	assert.Equal(t, 1, *shutdowns)
}

func TestNewServer_ShutdownReleasesTracing(t *testing.T) {
	shutdowns := stubTracing(t)
	dir := t.TempDir()
	setEnv(t, "sqlite://"+filepath.Join(dir, "coursemap.db"))

	source := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(source,
		[]byte(`[{"id":"A","name":"Intro","cycle":1,"credits":4,"prerequisites":[]}]`), 0o600))
	t.Setenv("SEED_FILE", source)

	srv, err := NewServer(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Zero(t, *shutdowns)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.Equal(t, 1, *shutdowns)
}
