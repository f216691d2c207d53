package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/envsync/assets"
	configapp "github.com/doeshing/envsync/internal/application/config"
	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/pkg/filesystem"
	"github.com/doeshing/envsync/internal/ports"
)

const (
	dirPermissions  fs.FileMode = 0o755
	filePermissions fs.FileMode = 0o600
)

// FileLoader loads YAML configuration from ~/.envsync/config.yaml (overridable via ENVSYNC_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file yields the defaults
// without creating anything on disk.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return domain.Config{}, &domain.OpError{Op: "config.load", Kind: domain.KindFileSystem, Path: path, Err: err}
	}

	// Fields absent from the file keep their default values.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	cfg = hydrateDefaults(cfg)
	if err := configapp.Validate(cfg); err != nil {
		return domain.Config{}, &domain.OpError{Op: "config.validate", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	return cfg, nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, raw, filePermissions)
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, filePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv("ENVSYNC_CONFIG"); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".envsync", "config.yaml")
}

// DefaultConfig returns the embedded defaults with paths expanded.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		cfg = domain.Config{
			ConfigFormatVersion: "1",
			History:             domain.HistorySettings{Enabled: true},
			Watch:               domain.WatchSettings{DebounceMS: 300},
		}
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.ManifestName == "" {
		cfg.ManifestName = "package.json"
	}
	if cfg.SchemaField == "" {
		cfg.SchemaField = "envModel"
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(filesystem.UserHomeDir(), ".envsync", "history.db")
	}
	cfg.History.Path = filesystem.ExpandHome(cfg.History.Path)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
