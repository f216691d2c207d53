package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/doeshing/envsync/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger(t *testing.T) *logger.ZapLogger {
	t.Helper()
	log, err := logger.New(false)
	require.NoError(t, err)
	return log
}

func TestWatcher_NotifiesOnManifestChange(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)

	w := New(manifest, 20*time.Millisecond, quietLogger(t))
	go func() {
		done <- w.Run(ctx, func(context.Context) { changes <- struct{}{} })
	}()

	// Keep touching the file until the watcher is registered and reports.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	notified := false
	for !notified {
		select {
		case <-ticker.C:
			require.NoError(t, os.WriteFile(manifest, []byte(`{"envModel":{"A":"x"}}`), 0o644))
		case <-changes:
			notified = true
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)

	w := New(manifest, 10*time.Millisecond, quietLogger(t))
	go func() {
		done <- w.Run(ctx, func(context.Context) { changes <- struct{}{} })
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1"), 0o644))
		time.Sleep(30 * time.Millisecond)
	}

	select {
	case <-changes:
		t.Fatal("writes to other files must not trigger")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "package.json"), time.Millisecond, quietLogger(t))
	err := w.Run(context.Background(), func(context.Context) {})
	require.Error(t, err)
}
