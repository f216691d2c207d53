package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/doeshing/envsync/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if strings.TrimSpace(cfg.ManifestName) == "" {
		return errors.New("manifest_name must be set")
	}
	if strings.TrimSpace(cfg.SchemaField) == "" {
		return errors.New("schema_field must be set")
	}
	if err := validateFileName("manifest_name", cfg.ManifestName); err != nil {
		return err
	}
	if err := validateFileName("env_file", cfg.EnvFile); err != nil {
		return err
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		return errors.New("history.path must be set when history is enabled")
	}
	if cfg.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must be >= 0, got %d", cfg.Watch.DebounceMS)
	}
	return nil
}

func validateFileName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s must be set", field)
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%s must be a bare file name, got %s", field, name)
	}
	return nil
}
