package journal

import "codeberg.org/mutker/oserr/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrSchemaMigration
	ErrTransactionFailed      = errors.ErrorCode("journal_transaction_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrInitJournal
	ErrStorageClose = errors.ErrCloseJournal
	ErrQuery        = errors.ErrQueryJournal
	ErrPrune        = errors.ErrPruneJournal

	// Recording Errors
	ErrRecord       = errors.ErrRecordJournal
	ErrInvalidEntry = errors.ErrInvalidEntry

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
