package domain

import "time"

// RunRecord captures one completed sync.
type RunRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	ManifestPath string    `json:"manifest_path"`
	EnvPath      string    `json:"env_path"`
	Keys         int       `json:"keys"`
	Warnings     int       `json:"warnings"`
}
