package guard_test

import (
	"errors"
	"testing"

	"fieldops/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsage demonstrates the embedding pattern the domain
// model relies on: zero-value structs fail validation, constructed ones pass.
func TestConstructorGuardUsage(t *testing.T) {
	type fund struct {
		amount int
		guard  guard.ConstructorGuard
	}

	errNotConstructed := errors.New("fund must be created via newFund")

	newFund := func(amount int) (fund, error) {
		if amount < 0 {
			return fund{}, errors.New("amount cannot be negative")
		}
		return fund{amount: amount, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_object_passes", func(t *testing.T) {
		f, err := newFund(1500)
		require.NoError(t, err)
		require.NoError(t, f.guard.Validate(errNotConstructed))
		assert.Equal(t, 1500, f.amount)
	})

	t.Run("zero_value_object_fails", func(t *testing.T) {
		var f fund
		err := f.guard.Validate(errNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errNotConstructed, err)
	})
}
