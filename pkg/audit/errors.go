package audit

import "fmt"

// StorageError represents an error from a record storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "memory", etc.)
	Operation string // Operation that failed ("store", "load", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// ChainIntegrityError reports a hash or link mismatch found during chain
// verification. It is never auto-repaired: the chain is evidence, not a
// cache, and retry cannot fix persisted tampering.
type ChainIntegrityError struct {
	Index  int    // Position of the first broken record
	Reason string // What mismatched
}

// Error implements the error interface.
func (e *ChainIntegrityError) Error() string {
	return fmt.Sprintf("chain integrity violation at record %d: %s", e.Index, e.Reason)
}

// ExportError represents an error during audit record export.
type ExportError struct {
	Format      string // Export format ("json", "csv")
	RecordCount int    // Number of records being exported
	Cause       error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, record_count=%d]: %v", e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		RecordCount: recordCount,
		Cause:       cause,
	}
}
