package commands_test

import (
	"testing"

	"staffing/internal/core/application/usecases/commands"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCancelOrderCommand(t *testing.T) {
	actor := newDispatcher(t)

	t.Run("no reason is fine", func(t *testing.T) {
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor, nil)

		require.NoError(t, err)
		assert.Empty(t, cmd.Reason())
	})

	t.Run("provided reason is kept", func(t *testing.T) {
		reason := "site closed"
		cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor, &reason)

		require.NoError(t, err)
		assert.Equal(t, "site closed", cmd.Reason())
	})

	t.Run("provided but blank reason is rejected", func(t *testing.T) {
		reason := "   "
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), actor, &reason)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
