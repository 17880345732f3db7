package kernel_test

import (
	"testing"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValidate(t *testing.T) {
	t.Run("dispatcher and worker are valid", func(t *testing.T) {
		require.NoError(t, kernel.RoleDispatcher.Validate())
		require.NoError(t, kernel.RoleWorker.Validate())
	})

	t.Run("unknown and out-of-range values are invalid", func(t *testing.T) {
		assert.ErrorIs(t, kernel.RoleUnknown.Validate(), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, kernel.Role(42).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("parses valid roles", func(t *testing.T) {
		role, err := kernel.RoleFromString("Dispatcher")
		require.NoError(t, err)
		assert.Equal(t, kernel.RoleDispatcher, role)

		role, err = kernel.RoleFromString("Worker")
		require.NoError(t, err)
		assert.Equal(t, kernel.RoleWorker, role)
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := kernel.RoleFromString("admin")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should create valid actor", func(t *testing.T) {
		id := kernel.NewUUID()

		actor, err := kernel.NewActor(id, kernel.RoleWorker)

		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.ID().IsEqual(id))
		assert.Equal(t, kernel.RoleWorker, actor.Role())
		assert.True(t, actor.IsWorker())
		assert.False(t, actor.IsDispatcher())
	})

	t.Run("should fail with zero id", func(t *testing.T) {
		var id kernel.UUID

		_, err := kernel.NewActor(id, kernel.RoleDispatcher)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with invalid role", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleUnknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var actor kernel.Actor

		err := actor.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Actor must be created")
	})
}
