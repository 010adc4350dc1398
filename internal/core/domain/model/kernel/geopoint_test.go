package kernel_test

import (
	"testing"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(19.4326, -99.1332)

		require.NoError(t, err)
		assert.InDelta(t, 19.4326, p.Latitude(), 1e-9)
		assert.InDelta(t, -99.1332, p.Longitude(), 1e-9)
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewGeoPoint(-90.5, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, 180.1)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_pair_rejected_as_placeholder", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p kernel.GeoPoint
		assert.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
	})
}

func TestGeoPoint_DistanceKM(t *testing.T) {
	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		p := mustPoint(t, 19.4326, -99.1332)

		d, err := p.DistanceKM(p)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		a := mustPoint(t, 19.4326, -99.1332)
		b := mustPoint(t, 19.3910, -99.2837)

		dab, err := a.DistanceKM(b)
		require.NoError(t, err)
		dba, err := b.DistanceKM(a)
		require.NoError(t, err)

		assert.InDelta(t, dab, dba, 1e-9)
	})

	t.Run("one_degree_of_latitude", func(t *testing.T) {
		a := mustPoint(t, 10, 50)
		b := mustPoint(t, 11, 50)

		d, err := a.DistanceKM(b)

		require.NoError(t, err)
		// One degree of latitude on a 6371 km sphere is ~111.19 km.
		assert.InDelta(t, 111.1949, d, 0.01)
	})

	t.Run("known_city_pair", func(t *testing.T) {
		london := mustPoint(t, 51.5074, -0.1278)
		paris := mustPoint(t, 48.8566, 2.3522)

		d, err := london.DistanceKM(paris)

		require.NoError(t, err)
		assert.InDelta(t, 343.5, d, 1.5)
	})

	t.Run("unconstructed_point_errors", func(t *testing.T) {
		a := mustPoint(t, 10, 50)
		var zero kernel.GeoPoint

		_, err := a.DistanceKM(zero)
		require.Error(t, err)
	})
}

func TestRoundKM(t *testing.T) {
	assert.InDelta(t, 12.35, kernel.RoundKM(12.345678), 1e-9)
	assert.InDelta(t, 0.0, kernel.RoundKM(0.0049), 1e-9)
	assert.InDelta(t, 0.01, kernel.RoundKM(0.005), 1e-9)
}
