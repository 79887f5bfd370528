// Package ledger provides the append-only, hash-chained audit ledger.
//
// Each appended record carries a lowercase hex SHA-256 hash of its
// canonical payload and a link to the previous record's hash. Tampering
// with any record's content, reordering, inserting, or deleting records
// breaks the chain from that point forward and is detected by Verify.
//
// # Chain Invariants
//
// For every record i > 0, records[i].PreviousHash equals
// records[i-1].RecordHash. For every record,
// records[i].RecordHash equals SHA-256 of its canonical payload. The
// genesis record has an empty PreviousHash.
//
// # Canonicalization
//
// The canonical payload is a fixed-field struct serialized with
// encoding/json: field order follows struct declaration, timestamps are
// UTC RFC3339Nano strings, and map keys are sorted by the encoder.
// The encoding is therefore stable across process restarts and platforms.
// This is the single most safety-critical property of the ledger; any
// non-determinism here silently breaks verifiability.
//
// # Concurrency
//
// Appends are serialized by a single mutex: at most one append is in
// flight per ledger, which is what makes the previous-hash links a total
// order. The lock covers only hash computation and insertion, never the
// evaluation that precedes an append. Verify and the read accessors take
// the read side and may run concurrently with each other.
package ledger
