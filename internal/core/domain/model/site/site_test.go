package site_test

import (
	"testing"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSite(t *testing.T, currentFund, minimumFund int) *site.Site {
	t.Helper()
	s, err := site.NewSite(kernel.NewUUID(), "Arcade Centro", "Av. Juárez 100", nil, currentFund, minimumFund)
	require.NoError(t, err)
	return s
}

func TestNewSite(t *testing.T) {
	t.Run("valid_site_starts_active", func(t *testing.T) {
		coords, err := kernel.NewGeoPoint(19.4326, -99.1332)
		require.NoError(t, err)

		s, err := site.NewSite(kernel.NewUUID(), "Arcade Centro", "Av. Juárez 100", &coords, 5000, 1500)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, site.StatusActive, s.Status())
		assert.True(t, s.IsActive())
		assert.Equal(t, 5000, s.CurrentFund())
		assert.Equal(t, 1500, s.MinimumFund())
		require.NotNil(t, s.Coordinates())
	})

	t.Run("requires_name_and_address", func(t *testing.T) {
		_, err := site.NewSite(kernel.NewUUID(), "", "addr", nil, 0, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = site.NewSite(kernel.NewUUID(), "name", "", nil, 0, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_negative_funds", func(t *testing.T) {
		_, err := site.NewSite(kernel.NewUUID(), "n", "a", nil, -1, 0)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = site.NewSite(kernel.NewUUID(), "n", "a", nil, 0, -1)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSite_CanDistribute(t *testing.T) {
	t.Run("allows_distribution_down_to_the_floor", func(t *testing.T) {
		s := newTestSite(t, 5000, 1500)

		require.NoError(t, s.CanDistribute(3500))
	})

	t.Run("rejects_distribution_breaching_the_floor", func(t *testing.T) {
		s := newTestSite(t, 5000, 1500)

		err := s.CanDistribute(3600)

		require.Error(t, err)
		var fundErr *errs.FundInsufficientError
		require.ErrorAs(t, err, &fundErr)
		assert.Equal(t, 3600, fundErr.Requested)
		assert.Equal(t, 5000, fundErr.CurrentFund)
		assert.Equal(t, 1500, fundErr.MinimumFund)
		// The check must not mutate the float.
		assert.Equal(t, 5000, s.CurrentFund())
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		s := newTestSite(t, 5000, 1500)
		assert.ErrorIs(t, s.CanDistribute(0), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, s.CanDistribute(-10), errs.ErrValueIsInvalid)
	})
}

func TestSite_CanExchange(t *testing.T) {
	// The change-request rule ignores the fund floor: a request may take the
	// float below the minimum as long as it is covered.
	t.Run("allows_exchange_below_the_floor", func(t *testing.T) {
		s := newTestSite(t, 5000, 1500)

		require.NoError(t, s.CanExchange(3600))
		require.NoError(t, s.CanExchange(5000))
	})

	t.Run("rejects_exchange_exceeding_the_float", func(t *testing.T) {
		s := newTestSite(t, 5000, 1500)

		err := s.CanExchange(5001)

		var fundErr *errs.FundInsufficientError
		require.ErrorAs(t, err, &fundErr)
		assert.Equal(t, 5001, fundErr.Requested)
	})
}

func TestSite_ApplyFundDelta(t *testing.T) {
	s := newTestSite(t, 5000, 1500)

	s.ApplyFundDelta(-3600)
	assert.Equal(t, 1400, s.CurrentFund())
	assert.True(t, s.IsBelowMinimumFund())

	s.ApplyFundDelta(2000)
	assert.Equal(t, 3400, s.CurrentFund())
	assert.False(t, s.IsBelowMinimumFund())
}

func TestRestoreSite(t *testing.T) {
	id := kernel.NewUUID()

	s, err := site.RestoreSite(id, "Arcade Norte", "Calle 5", nil, 1200, 1500, site.StatusMaintenance)

	require.NoError(t, err)
	assert.Equal(t, site.StatusMaintenance, s.Status())
	assert.False(t, s.IsActive())
	assert.Equal(t, 1200, s.CurrentFund())
	assert.True(t, s.IsBelowMinimumFund())
}
