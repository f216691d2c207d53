package envsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/infrastructure/envfile"
	"github.com/doeshing/envsync/internal/infrastructure/manifest"
	"github.com/doeshing/envsync/internal/pkg/logger"
)

// locatorFunc lets tests inject the manifest lookup without a real walk.
type locatorFunc func(string) (string, error)

func (f locatorFunc) Locate(dir string) (string, error) { return f(dir) }

type memoryHistory struct {
	records []domain.RunRecord
	err     error
}

func (m *memoryHistory) Save(r domain.RunRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memoryHistory) List(context.Context, int) ([]domain.RunRecord, error) {
	return m.records, nil
}

func (m *memoryHistory) Clear() error {
	m.records = nil
	return nil
}

type failingStore struct {
	writeErr error
}

func (f *failingStore) Read(string) (domain.EnvValues, error) { return domain.EnvValues{}, nil }
func (f *failingStore) Write(string, string) error { return f.writeErr }

func newService(t *testing.T, history *memoryHistory) *Service {
	t.Helper()
	log, err := logger.New(false)
	require.NoError(t, err)
	svc := &Service{
		Locator: manifest.NewLocator("package.json"),
		Reader:  manifest.NewReader("envModel"),
		Store:   envfile.NewStore(),
		Logger:  log,
		EnvFile: ".env",
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewID:   func() string { return "run-1" },
	}
	if history != nil {
		svc.History = history
	}
	return svc
}

func writeProject(t *testing.T, manifestJSON, env string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifestJSON), 0o644))
	if env != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	}
	return dir
}

func readEnv(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	return string(data)
}

func TestRun_WritesReconciledFile(t *testing.T) {
	dir := writeProject(t,
		`{"envModel":{"PORT":3000,"DEBUG":true,"MODE":"fast | slow | balanced","API":"http://localhost"}}`,
		"# stale comment\nDEBUG=maybe\nPORT=8080\nUNUSED=1\n",
	)
	nested := filepath.Join(dir, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	history := &memoryHistory{}

	result, err := newService(t, history).Run(context.Background(), domain.SyncRequest{StartDir: nested})
	require.NoError(t, err)

	assert.True(t, result.Written)
	assert.Equal(t, filepath.Join(dir, ".env"), result.EnvPath)
	assert.Equal(t, 4, result.Keys)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "DEBUG")
	assert.Equal(t, "API=http://localhost\nDEBUG=true\n# slow, balanced\nMODE=fast\nPORT=8080", readEnv(t, dir))

	require.Len(t, history.records, 1)
	assert.Equal(t, domain.RunRecord{
		ID:           "run-1",
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		ManifestPath: filepath.Join(dir, "package.json"),
		EnvPath:      filepath.Join(dir, ".env"),
		Keys:         4,
		Warnings:     1,
	}, history.records[0])
}

func TestRun_SecondRunIsStable(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"A":"x|y","B":false,"C":1.25}}`, "B=nah\n")
	svc := newService(t, nil)

	first, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.NoError(t, err)
	require.Len(t, first.Warnings, 1)
	afterFirst := readEnv(t, dir)

	second, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.NoError(t, err)
	assert.Empty(t, second.Warnings)
	assert.Equal(t, afterFirst, readEnv(t, dir))
}

func TestRun_NoSchemaWritesNothing(t *testing.T) {
	dir := writeProject(t, `{"name":"demo"}`, "")
	history := &memoryHistory{}

	result, err := newService(t, history).Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.NoError(t, err)

	assert.True(t, result.NoSchema)
	assert.False(t, result.Written)
	assert.Empty(t, result.Warnings)
	assert.NoFileExists(t, filepath.Join(dir, ".env"))
	assert.Empty(t, history.records)
}

func TestRun_DryRunLeavesFileUntouched(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"A":"new"}}`, "OLD=1")

	result, err := newService(t, nil).Run(context.Background(), domain.SyncRequest{StartDir: dir, DryRun: true})
	require.NoError(t, err)

	assert.False(t, result.Written)
	assert.Equal(t, "A=new", result.Content)
	assert.Equal(t, "OLD=1", readEnv(t, dir))
}

func TestRun_ManifestNotFound(t *testing.T) {
	svc := newService(t, nil)
	svc.Locator = locatorFunc(func(dir string) (string, error) {
		return "", &domain.OpError{Op: "manifest.locate", Kind: domain.KindManifestNotFound, Path: dir, Err: domain.ErrManifestNotFound}
	})
	dir := t.TempDir()

	_, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindManifestNotFound))
	assert.NoFileExists(t, filepath.Join(dir, ".env"))
}

func TestRun_MalformedManifestLeavesEnvUntouched(t *testing.T) {
	dir := writeProject(t, `{"envModel": {"A": `, "A=keep")

	_, err := newService(t, nil).Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindManifestParse))
	assert.Equal(t, "A=keep", readEnv(t, dir))
}

func TestRun_InjectedLocator(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"X":"1"}}`, "")
	svc := newService(t, nil)
	var asked string
	svc.Locator = locatorFunc(func(start string) (string, error) {
		asked = start
		return filepath.Join(dir, "package.json"), nil
	})

	result, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: "/somewhere/else"})
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/else", asked)
	assert.Equal(t, "X=1", readEnv(t, dir))
	assert.True(t, result.Written)
}

func TestRun_WriteFailureIsReturned(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"X":"1"}}`, "")
	svc := newService(t, &memoryHistory{})
	boom := errors.New("disk full")
	svc.Store = &failingStore{writeErr: boom}

	result, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.ErrorIs(t, err, boom)
	assert.False(t, result.Written)
	assert.Empty(t, svc.History.(*memoryHistory).records)
}

func TestRun_HistoryFailureIsNotFatal(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"X":"1"}}`, "")
	svc := newService(t, &memoryHistory{err: errors.New("locked")})

	result, err := svc.Run(context.Background(), domain.SyncRequest{StartDir: dir})
	require.NoError(t, err)
	assert.True(t, result.Written)
}

func TestRun_CancelledContextSkipsWrite(t *testing.T) {
	dir := writeProject(t, `{"envModel":{"X":"1"}}`, "X=0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(t, nil).Run(ctx, domain.SyncRequest{StartDir: dir})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "X=0", readEnv(t, dir))
}
