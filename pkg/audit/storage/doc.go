// Package storage provides durable persistence for audit records.
//
// The ledger itself is an in-memory structure; storage backends persist
// its records so a chain can be rebuilt after restart. Backends must
// preserve exact record order and field values on reload ; any reordering
// breaks the hash chain, which is why LoadAll returns records keyed by an
// append-sequence, never by map iteration.
//
// Two backends are provided: an in-memory store for tests and a SQLite
// store for production use. Both are safe for concurrent use.
package storage
