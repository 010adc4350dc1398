// Package kernel holds the shared value objects of the domain model:
// identifiers (UUID) and geographic coordinates (GeoPoint).
//
// Both types follow the constructor-guard pattern: the zero value is invalid
// and construction happens only through the provided factory functions, so
// aggregates embedding them can rely on their invariants holding.
package kernel
