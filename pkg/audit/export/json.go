package export

import (
	"context"
	"encoding/json"
	"io"

	"tribunal-hq/minos/pkg/audit"
)

// JSONExporter exports audit records as a JSON array.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes the records as a JSON array, preserving chain order.
func (e *JSONExporter) Export(ctx context.Context, records []audit.Record, w io.Writer) error {
	if len(records) == 0 {
		_, err := w.Write([]byte("[]"))
		return err
	}

	var (
		data []byte
		err  error
	)
	if e.Pretty {
		data, err = json.MarshalIndent(records, "", "  ")
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return audit.NewExportError("json", len(records), err)
	}

	if _, err := w.Write(data); err != nil {
		return audit.NewExportError("json", len(records), err)
	}
	return nil
}
