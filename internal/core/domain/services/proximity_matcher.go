package services

import (
	"math"
	"sort"

	"fieldops/internal/core/domain/model/kernel"
)

// Candidate pairs a courier identity with its freshest known position.
type Candidate struct {
	CourierID kernel.UUID
	Point     kernel.GeoPoint
}

// RankedCandidate is a candidate annotated with its great-circle distance
// from the origin. DistanceKM is rounded to two decimals for display; the
// ranking itself is computed on the unrounded value.
type RankedCandidate struct {
	Candidate
	DistanceKM float64
}

// ProximityMatcher is a domain service that ranks couriers by great-circle
// distance from a site.
//
// Selection rules:
//   - Nearest wins on strictly smaller distance.
//   - Distance ties between distinct couriers resolve to the smaller
//     courier ID, so a ranking over the same inputs is deterministic
//     regardless of candidate order.
type ProximityMatcher struct{}

// NewProximityMatcher creates a new ProximityMatcher instance.
func NewProximityMatcher() ProximityMatcher {
	return ProximityMatcher{}
}

// Nearest returns the candidate closest to origin. ok is false when the
// candidate slice is empty.
func (m ProximityMatcher) Nearest(origin kernel.GeoPoint, candidates []Candidate) (best Candidate, ok bool) {
	bestDistance := math.MaxFloat64

	for _, c := range candidates {
		d, err := origin.DistanceKM(c.Point)
		if err != nil {
			continue // unconstructed point, cannot rank
		}
		if d < bestDistance || (d == bestDistance && c.CourierID.String() < best.CourierID.String()) {
			best = c
			bestDistance = d
		}
	}

	return best, bestDistance != math.MaxFloat64
}

// SortedByDistance returns all candidates ordered nearest first, each with
// its display distance.
func (m ProximityMatcher) SortedByDistance(origin kernel.GeoPoint, candidates []Candidate) []RankedCandidate {
	type measured struct {
		candidate Candidate
		exact     float64
	}

	all := make([]measured, 0, len(candidates))
	for _, c := range candidates {
		d, err := origin.DistanceKM(c.Point)
		if err != nil {
			continue
		}
		all = append(all, measured{candidate: c, exact: d})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].exact != all[j].exact {
			return all[i].exact < all[j].exact
		}
		return all[i].candidate.CourierID.String() < all[j].candidate.CourierID.String()
	})

	ranked := make([]RankedCandidate, 0, len(all))
	for _, m := range all {
		ranked = append(ranked, RankedCandidate{Candidate: m.candidate, DistanceKM: kernel.RoundKM(m.exact)})
	}

	return ranked
}
