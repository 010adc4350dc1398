package actor_test

import (
	"testing"

	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	for _, valid := range []string{"admin", "courier", "site"} {
		role, err := actor.RoleFromString(valid)
		require.NoError(t, err)
		assert.Equal(t, actor.Role(valid), role)
	}

	_, err := actor.RoleFromString("moto")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = actor.RoleFromString("")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewActor(t *testing.T) {
	t.Run("valid_actor", func(t *testing.T) {
		id := kernel.NewUUID()

		a, err := actor.NewActor(id, actor.RoleCourier)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(id))
		assert.True(t, a.IsCourier())
		assert.False(t, a.IsAdmin())
		assert.False(t, a.IsSite())
	})

	t.Run("invalid_id", func(t *testing.T) {
		var zero kernel.UUID
		_, err := actor.NewActor(zero, actor.RoleAdmin)
		require.Error(t, err)
	})

	t.Run("invalid_role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.Role("dispatcher"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var a actor.Actor
		assert.ErrorIs(t, a.Validate(), actor.ErrActorIsNotConstructed)
	})
}
