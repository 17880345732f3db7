package order_test

import (
	"testing"

	"staffing/internal/core/domain/model/order"
	"staffing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	valid := []order.Status{
		order.StatusStaffing,
		order.StatusInProgress,
		order.StatusCompleted,
		order.StatusCanceled,
		order.StatusExpired,
	}
	for _, s := range valid {
		t.Run(s.String(), func(t *testing.T) {
			require.NoError(t, s.Validate())
		})
	}

	t.Run("unknown is invalid", func(t *testing.T) {
		assert.ErrorIs(t, order.StatusUnknown.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("out of range is invalid", func(t *testing.T) {
		assert.ErrorIs(t, order.Status(99).Validate(), errs.ErrValueIsInvalid)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Staffing", order.StatusStaffing.String())
	assert.Equal(t, "InProgress", order.StatusInProgress.String())
	assert.Equal(t, "Completed", order.StatusCompleted.String())
	assert.Equal(t, "Canceled", order.StatusCanceled.String())
	assert.Equal(t, "Expired", order.StatusExpired.String())
	assert.Equal(t, "Unknown", order.Status(99).String())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, order.StatusStaffing.IsTerminal())
	assert.False(t, order.StatusInProgress.IsTerminal())
	assert.True(t, order.StatusCompleted.IsTerminal())
	assert.True(t, order.StatusCanceled.IsTerminal())
	assert.True(t, order.StatusExpired.IsTerminal())
}

func TestStatusStart(t *testing.T) {
	t.Run("staffing can start", func(t *testing.T) {
		next, err := order.StatusStaffing.Start()

		require.NoError(t, err)
		assert.Equal(t, order.StatusInProgress, next)
	})

	for _, s := range []order.Status{
		order.StatusInProgress, order.StatusCompleted, order.StatusCanceled, order.StatusExpired,
	} {
		t.Run(s.String()+" cannot start", func(t *testing.T) {
			_, err := s.Start()
			require.Error(t, err)
		})
	}
}

func TestStatusCancel(t *testing.T) {
	t.Run("staffing can cancel", func(t *testing.T) {
		next, err := order.StatusStaffing.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, next)
	})

	t.Run("in progress can cancel", func(t *testing.T) {
		next, err := order.StatusInProgress.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.StatusCanceled, next)
	})

	for _, s := range []order.Status{order.StatusCompleted, order.StatusCanceled, order.StatusExpired} {
		t.Run(s.String()+" cannot cancel", func(t *testing.T) {
			_, err := s.Cancel()
			require.Error(t, err)
		})
	}
}

func TestStatusComplete(t *testing.T) {
	t.Run("in progress can complete", func(t *testing.T) {
		next, err := order.StatusInProgress.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, next)
	})

	for _, s := range []order.Status{
		order.StatusStaffing, order.StatusCompleted, order.StatusCanceled, order.StatusExpired,
	} {
		t.Run(s.String()+" cannot complete", func(t *testing.T) {
			_, err := s.Complete()
			require.Error(t, err)
		})
	}
}

func TestStatusExpire(t *testing.T) {
	t.Run("staffing can expire", func(t *testing.T) {
		next, err := order.StatusStaffing.Expire()

		require.NoError(t, err)
		assert.Equal(t, order.StatusExpired, next)
	})

	for _, s := range []order.Status{
		order.StatusInProgress, order.StatusCompleted, order.StatusCanceled, order.StatusExpired,
	} {
		t.Run(s.String()+" cannot expire", func(t *testing.T) {
			_, err := s.Expire()
			require.Error(t, err)
		})
	}
}
