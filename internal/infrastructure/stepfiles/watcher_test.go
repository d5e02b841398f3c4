package stepfiles

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jhoicas/roteiro-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_AvisaSoloFamiliasPermitidas(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 8)
	w, err := NewWatcher(dir, func(_ context.Context, file string) { got <- file }, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignorado.json"), []byte("{}"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, entity.StepFileReceptivo), []byte("{}"), 0o644))
	}

	select {
	case f := <-got:
		assert.Equal(t, entity.StepFileReceptivo, f)
	case <-time.After(3 * time.Second):
		t.Fatal("sin aviso del watcher")
	}
	select {
	case f := <-got:
		t.Fatalf("aviso inesperado: %s", f)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopSinStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func(context.Context, string) {}, nil)
	require.NoError(t, err)
	w.Stop()
}
