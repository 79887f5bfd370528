// Package export writes audit records to downstream formats.
//
// Exporters are strictly downstream of the ledger: they never influence
// hashing or verification, and an export is not a substitute for the
// chain itself.
package export

import (
	"context"
	"io"

	"tribunal-hq/minos/pkg/audit"
)

// Exporter writes audit records to a writer in a specific format.
type Exporter interface {
	// Export writes the records in the exporter's format.
	Export(ctx context.Context, records []audit.Record, w io.Writer) error
}
