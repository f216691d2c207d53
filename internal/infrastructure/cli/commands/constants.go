package commands

// History display constants
const (
	DefaultHistoryLimit = 20
	TimestampFormat     = "2006-01-02 15:04:05"
)

// Error messages
const (
	ErrSyncServiceUnavailable   = "sync service unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable (history.enabled is false)"
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDiagnosticsFailed        = "diagnostics found errors"
)

// Console messages
const (
	MsgWarningsHeader   = "Type validation warnings:"
	MsgGenerated        = "Generated %s file at: %s"
	MsgNoSchema         = "No %s found in %s"
	MsgNoHistory        = "No runs recorded yet."
	MsgHistoryCleared   = "History cleared."
	MsgWatching         = "Watching %s for changes (Ctrl+C to stop)"
	MsgConfigExists     = "%s already exists; use --force to overwrite"
	MsgConfigWritten    = "Configuration written: %s"
	MsgConfigBackedUpTo = "Existing config backed up to: %s"
)
