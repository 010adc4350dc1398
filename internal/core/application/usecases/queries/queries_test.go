package queries_test

import (
	"testing"

	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"
	"fieldops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCourierPositionsQuery(t *testing.T) {
	query, err := queries.NewGetCourierPositionsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetCourierPositionsQuery(kernel.UUID{})
	assert.Error(t, err)
}

func TestGetCourierPositionsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCourierPositionsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCourierPositionsQueryIsNotConstructed)
}

func TestNewGetNearestCourierQuery(t *testing.T) {
	t.Run("valid_with_kind", func(t *testing.T) {
		query, err := queries.NewGetNearestCourierQuery(kernel.NewUUID(), task.KindFailure)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, task.KindFailure, query.Kind())
	})

	t.Run("empty_kind_allowed", func(t *testing.T) {
		query, err := queries.NewGetNearestCourierQuery(kernel.NewUUID(), "")
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("rejects_unknown_kind", func(t *testing.T) {
		_, err := queries.NewGetNearestCourierQuery(kernel.NewUUID(), task.Kind("errand"))
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewGetTasksQuery(t *testing.T) {
	caller, err := actor.NewActor(kernel.NewUUID(), actor.RoleCourier)
	require.NoError(t, err)

	t.Run("valid_with_status_filter", func(t *testing.T) {
		query, err := queries.NewGetTasksQuery(caller, "assigned")
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, task.StatusAssigned, query.Status())
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := queries.NewGetTasksQuery(caller, "paused")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unconstructed_caller", func(t *testing.T) {
		_, err := queries.NewGetTasksQuery(actor.Actor{}, "")
		assert.Error(t, err)
	})
}

func TestNewGetChangeRequestsQuery(t *testing.T) {
	caller, err := actor.NewActor(kernel.NewUUID(), actor.RoleSite)
	require.NoError(t, err)

	query, err := queries.NewGetChangeRequestsQuery(caller, "pending")
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetChangeRequestsQuery(caller, "stalled")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
