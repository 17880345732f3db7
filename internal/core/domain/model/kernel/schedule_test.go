package kernel_test

import (
	"testing"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExactSchedule(t *testing.T) {
	t.Run("should create schedule for a concrete time", func(t *testing.T) {
		at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

		s, err := kernel.NewExactSchedule(at)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.False(t, s.IsSoon())

		exact, ok := s.ExactTime()
		assert.True(t, ok)
		assert.True(t, exact.Equal(at))
	})

	t.Run("should reject the zero time", func(t *testing.T) {
		_, err := kernel.NewExactSchedule(time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewSoonSchedule(t *testing.T) {
	s := kernel.NewSoonSchedule()

	require.NoError(t, s.Validate())
	assert.True(t, s.IsSoon())
	assert.Equal(t, "soon", s.String())

	_, ok := s.ExactTime()
	assert.False(t, ok)
}

func TestScheduleIsPast(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("exact schedule before now is past", func(t *testing.T) {
		s, err := kernel.NewExactSchedule(now.Add(-time.Hour))
		require.NoError(t, err)

		assert.True(t, s.IsPast(now))
	})

	t.Run("exact schedule after now is not past", func(t *testing.T) {
		s, err := kernel.NewExactSchedule(now.Add(time.Hour))
		require.NoError(t, err)

		assert.False(t, s.IsPast(now))
	})

	t.Run("exact schedule equal to now is not past", func(t *testing.T) {
		s, err := kernel.NewExactSchedule(now)
		require.NoError(t, err)

		assert.False(t, s.IsPast(now))
	})

	t.Run("soon schedule is never past", func(t *testing.T) {
		s := kernel.NewSoonSchedule()

		assert.False(t, s.IsPast(now.Add(1000*time.Hour)))
	})
}

func TestScheduleValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var s kernel.Schedule

		err := s.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Schedule must be created")
	})
}

func TestScheduleIsEqual(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	exact, err := kernel.NewExactSchedule(at)
	require.NoError(t, err)
	sameExact, err := kernel.NewExactSchedule(at)
	require.NoError(t, err)
	otherExact, err := kernel.NewExactSchedule(at.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, exact.IsEqual(sameExact))
	assert.False(t, exact.IsEqual(otherExact))
	assert.False(t, exact.IsEqual(kernel.NewSoonSchedule()))
	assert.True(t, kernel.NewSoonSchedule().IsEqual(kernel.NewSoonSchedule()))
}
