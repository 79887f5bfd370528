package audit

import (
	"time"

	"tribunal-hq/minos/pkg/engine"
)

// EventType categorizes what an audit record witnesses.
type EventType string

const (
	// EventEvaluation records one statute evaluation decision.
	EventEvaluation EventType = "evaluation.recorded"

	// EventRegistryChange records a statute registration or replacement.
	EventRegistryChange EventType = "registry.changed"

	// EventIntegritySweep records a scheduled chain verification run.
	EventIntegritySweep EventType = "integrity.sweep"
)

// ActorKind identifies the variant of an Actor.
type ActorKind string

const (
	ActorSystem   ActorKind = "system"
	ActorUser     ActorKind = "user"
	ActorExternal ActorKind = "external"
)

// Actor is a tagged union naming who caused an audited event. System
// actors carry no id; user and external actors carry the identity of the
// person or collaborating system.
type Actor struct {
	Kind ActorKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

// SystemActor creates the system actor.
func SystemActor() Actor {
	return Actor{Kind: ActorSystem}
}

// UserActor creates a user actor.
func UserActor(id string) Actor {
	return Actor{Kind: ActorUser, ID: id}
}

// ExternalActor creates an external-system actor.
func ExternalActor(id string) Actor {
	return Actor{Kind: ActorExternal, ID: id}
}

// String returns the canonical textual form embedded in hashed payloads:
// "system", "user:<id>", or "external:<id>".
func (a Actor) String() string {
	switch a.Kind {
	case ActorSystem:
		return "system"
	case ActorUser:
		return "user:" + a.ID
	case ActorExternal:
		return "external:" + a.ID
	default:
		return "unknown:" + string(a.Kind)
	}
}

// Record is one immutable, hash-linked audit entry. PreviousHash is empty
// only for the first record of a ledger (genesis); RecordHash covers every
// other field, including PreviousHash.
type Record struct {
	// ID is a UUID assigned at append time.
	ID string `json:"id"`

	// Timestamp is the append time, normalized to UTC.
	Timestamp time.Time `json:"timestamp"`

	// EventType categorizes the witnessed event.
	EventType EventType `json:"event_type"`

	// Actor names who caused the event.
	Actor Actor `json:"actor"`

	// StatuteID identifies the evaluated statute.
	StatuteID string `json:"statute_id"`

	// SubjectID identifies the subject the facts describe.
	SubjectID string `json:"subject_id"`

	// DecisionContext carries free-form key/value context captured with
	// the decision (e.g. the reasoning engine that requested it).
	DecisionContext map[string]string `json:"decision_context,omitempty"`

	// Result is the decision snapshot this record witnesses.
	Result engine.Decision `json:"result"`

	// RecordHash is the lowercase hex SHA-256 of the record's canonical
	// payload.
	RecordHash string `json:"record_hash"`

	// PreviousHash links to the preceding record's RecordHash. It is a
	// content reference, never an ownership pointer.
	PreviousHash string `json:"previous_hash,omitempty"`
}
