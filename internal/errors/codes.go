package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Resource errors
	ErrResourceBusy     ErrorCode = "resource_busy"
	ErrResourceNotFound ErrorCode = "resource_not_found"

	// Command errors
	ErrUnknownDomain ErrorCode = "unknown_domain"
	ErrInvalidCode   ErrorCode = "invalid_code"
	ErrEncodeOutput  ErrorCode = "encode_output_failed"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"

	// Journal errors
	ErrInitJournal     ErrorCode = "init_journal_failed"
	ErrRecordJournal   ErrorCode = "record_journal_failed"
	ErrQueryJournal    ErrorCode = "query_journal_failed"
	ErrPruneJournal    ErrorCode = "prune_journal_failed"
	ErrCloseJournal    ErrorCode = "close_journal_failed"
	ErrInvalidEntry    ErrorCode = "journal_invalid_entry"
	ErrSchemaMigration ErrorCode = "schema_migration_failed"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrUnavailable:      "Service unavailable",
	ErrInvalidConfig:    "Invalid configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrReadConfig:       "Failed to read configuration",
	ErrInvalidInterval:  "Invalid interval value",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrResourceBusy:     "Resource is busy",
	ErrResourceNotFound: "Resource not found",
	ErrUnknownDomain:    "Unknown error domain",
	ErrInvalidCode:      "Invalid error code",
	ErrEncodeOutput:     "Failed to encode output",
	ErrOperationFailed:  "Operation failed",
	ErrTimeout:          "Operation timed out",
	ErrInitJournal:      "Failed to initialize journal",
	ErrRecordJournal:    "Failed to record journal entry",
	ErrQueryJournal:     "Failed to query journal",
	ErrPruneJournal:     "Failed to prune journal",
	ErrCloseJournal:     "Failed to close journal",
	ErrInvalidEntry:     "Only translated system errors can be journaled",
	ErrSchemaMigration:  "Failed to migrate journal schema",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
