package domain

// SyncRequest describes a single reconciliation run.
type SyncRequest struct {
	StartDir string
	DryRun   bool
}

// SyncResult is what a run produced. NoSchema is set when the manifest
// declares no schema; nothing is written in that case.
type SyncResult struct {
	ManifestPath string
	EnvPath      string
	NoSchema     bool
	Written      bool
	Keys         int
	Reconciliation
}
