package envsync

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

// Service locates the manifest, reconciles the env file against its schema
// and writes the result.
type Service struct {
	Locator ports.ManifestLocator
	Reader  ports.ManifestReader
	Store   ports.EnvStore
	History ports.HistoryRepository
	Logger  ports.Logger

	// EnvFile is the env file name placed next to the manifest.
	EnvFile string

	Now   func() time.Time
	NewID func() string
}

// Plan performs every step of a run except the write.
func (s *Service) Plan(ctx context.Context, startDir string) (domain.SyncResult, error) {
	manifestPath, err := s.Locator.Locate(startDir)
	if err != nil {
		return domain.SyncResult{}, err
	}
	result := domain.SyncResult{
		ManifestPath: manifestPath,
		EnvPath:      filepath.Join(filepath.Dir(manifestPath), s.envFile()),
	}
	s.Logger.Debug("sync.manifest_located", map[string]interface{}{"manifest": manifestPath})

	schema, ok, err := s.Reader.ReadSchema(manifestPath)
	if err != nil {
		return result, err
	}
	if !ok {
		result.NoSchema = true
		return result, nil
	}

	existing, err := s.Store.Read(result.EnvPath)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	result.Keys = len(schema)
	result.Reconciliation = domain.Reconcile(schema, existing)
	for _, w := range result.Warnings {
		s.Logger.Warn("sync.type_mismatch", map[string]interface{}{"warning": w})
	}
	return result, nil
}

// Run performs a full sync. Nothing is written when the manifest declares
// no schema, when req.DryRun is set, or when any earlier step fails.
func (s *Service) Run(ctx context.Context, req domain.SyncRequest) (domain.SyncResult, error) {
	result, err := s.Plan(ctx, req.StartDir)
	if err != nil || result.NoSchema || req.DryRun {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if err := s.Store.Write(result.EnvPath, result.Content); err != nil {
		return result, err
	}
	result.Written = true
	s.Logger.Info("sync.written", map[string]interface{}{
		"path":     result.EnvPath,
		"keys":     result.Keys,
		"warnings": len(result.Warnings),
	})

	s.record(result)
	return result, nil
}

// record stores the run in history. Failures are logged, never returned.
func (s *Service) record(result domain.SyncResult) {
	if s.History == nil {
		return
	}
	rec := domain.RunRecord{
		ID:           s.newID(),
		Timestamp:    s.now(),
		ManifestPath: result.ManifestPath,
		EnvPath:      result.EnvPath,
		Keys:         result.Keys,
		Warnings:     len(result.Warnings),
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Error("sync.history_save_failed", err, map[string]interface{}{"id": rec.ID})
	}
}

func (s *Service) envFile() string {
	if s.EnvFile == "" {
		return ".env"
	}
	return s.EnvFile
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
