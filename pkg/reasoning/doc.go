// Package reasoning orchestrates statute evaluation for a jurisdiction.
//
// The Reasoner ties the statute registry, the evaluation engine, and the
// audit recorder together: it loads statutes from a source, evaluates
// them against fact contexts, and appends one audit record per
// evaluation and per registry change.
package reasoning
