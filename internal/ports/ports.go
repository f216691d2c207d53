// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The sync core only talks to the filesystem, the manifest and the run history
// through these contracts, so reconciliation can be exercised without touching
// disk and adapters can be swapped in tests.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ManifestLocator, EnvStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/envsync/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.envsync/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ManifestLocator finds the project manifest by walking up from startDir.
// It returns a domain.KindManifestNotFound error when the walk reaches the
// filesystem root.
type ManifestLocator interface {
	Locate(startDir string) (string, error)
}

// ManifestReader extracts the environment schema from a manifest file.
// ok is false when the manifest declares no schema.
type ManifestReader interface {
	ReadSchema(path string) (schema domain.Schema, ok bool, err error)
}

// EnvStore reads and writes environment files.
type EnvStore interface {
	Read(path string) (domain.EnvValues, error)
	Write(path, content string) error
}

// HistoryRepository persists completed sync runs.
type HistoryRepository interface {
	Save(domain.RunRecord) error
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, no-op).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
