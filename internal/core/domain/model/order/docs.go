// Package order provides the Order aggregate: the immutable record of a quote
// that completed successfully in standard-quote mode.
//
// Key business rules:
//   - An order is created exactly once, when a session completes
//   - Orders are never updated or deleted
//   - Orders are keyed by conversation; listing returns them in creation order
//   - The stored tier is its identifier, so relabelling a tier does not rewrite history
package order
