// Package integrity runs scheduled verification sweeps over the audit
// ledger. A sweep recomputes the full hash chain, compares the chain
// against previously anchored tip hashes, records the outcome as an
// audit record, and checkpoints the new tip in the anchor store.
package integrity
