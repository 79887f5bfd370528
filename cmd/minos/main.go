// Minos is a statute evaluation engine with a hash-chained audit ledger.
//
// It evaluates legal rules against typed fact contexts, producing either
// a deterministic outcome, a referral to human discretion, or an
// evaluation error naming the missing fact. Every evaluation is appended
// to a tamper-evident, hash-chained audit ledger.
//
// Usage:
//
//	# Start the service with default configuration
//	minos serve
//
//	# Evaluate one statute against a fact context
//	minos evaluate minpo-709 --subject subject-a --fact caused_harm=true --fact negligence=true
//
//	# Evaluate every registered statute
//	minos evaluate --all --subject subject-a --fact caused_harm=true
//
//	# Verify the audit chain
//	minos ledger verify
//
//	# Export the audit chain
//	minos ledger export --format csv --output audit.csv
//
//	# List registered statutes
//	minos statutes list
//
//	# Show version information
//	minos version
package main

func main() {
	Execute()
}
