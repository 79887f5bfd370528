package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"tribunal-hq/minos/pkg/audit"
)

// canonicalPayload is the hashed view of a record. Field order is fixed by
// declaration, the timestamp is a UTC RFC3339Nano string, the actor and
// result use their canonical textual forms, and encoding/json sorts the
// decision context keys. RecordHash is deliberately absent; PreviousHash
// is deliberately present, which is what links the chain.
type canonicalPayload struct {
	ID              string            `json:"id"`
	Timestamp       string            `json:"timestamp"`
	EventType       string            `json:"event_type"`
	Actor           string            `json:"actor"`
	StatuteID       string            `json:"statute_id"`
	SubjectID       string            `json:"subject_id"`
	DecisionContext map[string]string `json:"decision_context"`
	Result          string            `json:"result"`
	PreviousHash    string            `json:"previous_hash"`
}

// CanonicalPayload returns the deterministic serialization of a record's
// hashed fields. Identical records always yield identical bytes.
//
// An empty decision context is normalized to nil before marshalling so
// that the payload never depends on the nil/empty distinction, which
// storage backends do not preserve.
func CanonicalPayload(r *audit.Record) ([]byte, error) {
	decisionContext := r.DecisionContext
	if len(decisionContext) == 0 {
		decisionContext = nil
	}
	payload := canonicalPayload{
		ID:              r.ID,
		Timestamp:       r.Timestamp.UTC().Format(time.RFC3339Nano),
		EventType:       string(r.EventType),
		Actor:           r.Actor.String(),
		StatuteID:       r.StatuteID,
		SubjectID:       r.SubjectID,
		DecisionContext: decisionContext,
		Result:          r.Result.String(),
		PreviousHash:    r.PreviousHash,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canonical payload: %w", err)
	}
	return raw, nil
}

// HashRecord computes the lowercase hex SHA-256 of a record's canonical
// payload.
func HashRecord(r *audit.Record) (string, error) {
	raw, err := CanonicalPayload(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
