package commands_test

import (
	"testing"
	"time"

	"staffing/internal/core/application/usecases/commands"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	actor := newDispatcher(t)
	schedule, err := kernel.NewExactSchedule(testNow.Add(time.Hour))
	require.NoError(t, err)

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor,
			"Unload truck", "Pier 3", 1500, schedule, 2*time.Hour, 2,
			[]string{"night"}, map[string]string{"gate": "B"}, "bring gloves")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "Unload truck", cmd.Title())
		assert.Equal(t, 2, cmd.RequiredWorkers())
	})

	t.Run("blank title is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor,
			"", "Pier 3", 1500, schedule, 2*time.Hour, 2, nil, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero required workers is rejected", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), actor,
			"Unload truck", "Pier 3", 1500, schedule, 2*time.Hour, 0, nil, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
