// Package services provides domain services that coordinate business
// operations spanning multiple aggregates.
//
// The package includes:
//   - ProximityMatcher: ranks couriers by great-circle distance from a site
//   - EstimateMinutes: per-kind handling-time estimates for arrival quotes
package services
