package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"tribunal-hq/minos/pkg/audit"
)

// csvHeader lists the exported columns in order.
var csvHeader = []string{
	"id",
	"timestamp",
	"event_type",
	"actor",
	"statute_id",
	"subject_id",
	"decision_context",
	"result_kind",
	"result_satisfied",
	"result_discretion_issue",
	"result_missing_attribute",
	"record_hash",
	"previous_hash",
}

// CSVExporter exports audit records as CSV with a header row.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the records as CSV, preserving chain order. The decision
// context is embedded as a JSON object in a single column.
func (e *CSVExporter) Export(ctx context.Context, records []audit.Record, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return audit.NewExportError("csv", len(records), err)
	}

	for i := range records {
		r := &records[i]

		contextJSON := ""
		if len(r.DecisionContext) > 0 {
			raw, err := json.Marshal(r.DecisionContext)
			if err != nil {
				return audit.NewExportError("csv", len(records), err)
			}
			contextJSON = string(raw)
		}

		row := []string{
			r.ID,
			r.Timestamp.UTC().Format(time.RFC3339Nano),
			string(r.EventType),
			r.Actor.String(),
			r.StatuteID,
			r.SubjectID,
			contextJSON,
			string(r.Result.Kind),
			strconv.FormatBool(r.Result.Satisfied),
			r.Result.DiscretionIssue,
			r.Result.MissingAttribute,
			r.RecordHash,
			r.PreviousHash,
		}
		if err := cw.Write(row); err != nil {
			return audit.NewExportError("csv", len(records), err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return audit.NewExportError("csv", len(records), err)
	}
	return nil
}
