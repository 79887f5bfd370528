package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements creating the audit record schema.
// seq is a monotonically increasing append sequence; LoadAll orders by it
// so the reloaded chain is byte-for-byte the original append order.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_records (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,

    id TEXT NOT NULL UNIQUE,
    timestamp TEXT NOT NULL,
    event_type TEXT NOT NULL,
    actor_kind TEXT NOT NULL,
    actor_id TEXT,

    statute_id TEXT NOT NULL,
    subject_id TEXT NOT NULL,
    decision_context TEXT,

    result_kind TEXT NOT NULL,
    result_satisfied BOOLEAN NOT NULL,
    result_discretion_issue TEXT,
    result_missing_attribute TEXT,

    record_hash TEXT NOT NULL,
    previous_hash TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_statute ON audit_records(statute_id);
CREATE INDEX IF NOT EXISTS idx_audit_subject ON audit_records(subject_id);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`
