package services_test

import (
	"testing"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()

	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestProximityMatcher_Nearest(t *testing.T) {
	matcher := services.NewProximityMatcher()
	origin := mustPoint(t, 19.4326, -99.1332)

	t.Run("picks_the_closest_candidate", func(t *testing.T) {
		near := services.Candidate{CourierID: kernel.NewUUID(), Point: mustPoint(t, 19.44, -99.14)}
		far := services.Candidate{CourierID: kernel.NewUUID(), Point: mustPoint(t, 20.0, -99.5)}

		best, ok := matcher.Nearest(origin, []services.Candidate{far, near})

		require.True(t, ok)
		assert.True(t, best.CourierID.IsEqual(near.CourierID))
	})

	t.Run("equal_distance_keeps_smaller_id", func(t *testing.T) {
		samePoint := mustPoint(t, 19.5, -99.2)
		a := services.Candidate{CourierID: kernel.NewUUID(), Point: samePoint}
		b := services.Candidate{CourierID: kernel.NewUUID(), Point: samePoint}

		wantID := a.CourierID
		if b.CourierID.String() < a.CourierID.String() {
			wantID = b.CourierID
		}

		best, ok := matcher.Nearest(origin, []services.Candidate{a, b})
		require.True(t, ok)
		assert.True(t, best.CourierID.IsEqual(wantID))

		best, ok = matcher.Nearest(origin, []services.Candidate{b, a})
		require.True(t, ok)
		assert.True(t, best.CourierID.IsEqual(wantID))
	})

	t.Run("empty_candidates", func(t *testing.T) {
		_, ok := matcher.Nearest(origin, nil)
		assert.False(t, ok)
	})
}

func TestProximityMatcher_SortedByDistance(t *testing.T) {
	matcher := services.NewProximityMatcher()
	origin := mustPoint(t, 19.4326, -99.1332)

	near := services.Candidate{CourierID: kernel.NewUUID(), Point: mustPoint(t, 19.44, -99.14)}
	mid := services.Candidate{CourierID: kernel.NewUUID(), Point: mustPoint(t, 19.6, -99.3)}
	far := services.Candidate{CourierID: kernel.NewUUID(), Point: mustPoint(t, 20.5, -100.0)}

	ranked := matcher.SortedByDistance(origin, []services.Candidate{far, near, mid})

	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].CourierID.IsEqual(near.CourierID))
	assert.True(t, ranked[1].CourierID.IsEqual(mid.CourierID))
	assert.True(t, ranked[2].CourierID.IsEqual(far.CourierID))

	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].DistanceKM, ranked[i].DistanceKM)
	}

	// Display distances carry two decimals at most.
	for _, r := range ranked {
		assert.InDelta(t, r.DistanceKM, kernel.RoundKM(r.DistanceKM), 1e-9)
	}
}
