// Package audit provides the immutable audit record model shared by the
// ledger, storage, export, and integrity subpackages.
//
// Every statute evaluation produces exactly one Record: an immutable
// snapshot of who evaluated what, against whom, with what result, and
// when. Records are hash-linked into an append-only chain by the ledger
// subpackage; the RecordHash and PreviousHash fields carry lowercase
// hex-encoded SHA-256 digests.
//
// Records are evidence. They are created once, appended immediately, and
// never mutated or deleted afterwards.
package audit
