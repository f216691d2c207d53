package domain

// Config mirrors ~/.envsync/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	ManifestName        string          `yaml:"manifest_name"`
	SchemaField         string          `yaml:"schema_field"`
	EnvFile             string          `yaml:"env_file"`
	History             HistorySettings `yaml:"history"`
	Watch               WatchSettings   `yaml:"watch"`
}

// HistorySettings controls the run history store.
type HistorySettings struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WatchSettings tunes watch mode.
type WatchSettings struct {
	DebounceMS int `yaml:"debounce_ms"`
}
