package checkout

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/onlineshop/lib/mytime"
)

func at(t *testing.T, s string) time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestComputeDelivery(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("without preferred time", func(t *testing.T) {
		got := ComputeDelivery(mytime.ExampleTime, policy, nil)

		assert.Equal(t, 24, got.ETAHours)
		assert.Equal(t, "", got.PreferredTime)
		assert.True(t, at(t, "2024-01-02T10:00:00Z").Equal(got.ScheduledAt))
		assert.Equal(t, "Delivered within 24 hours. Scheduled for 02.01.2024 10:00", got.Note)
	})

	t.Run("preferred time before earliest rolls over to next day", func(t *testing.T) {
		got := ComputeDelivery(mytime.ExampleTime, policy, &TimeOfDay{Hour: 9, Minute: 0})

		assert.True(t, at(t, "2024-01-03T09:00:00Z").Equal(got.ScheduledAt))
		assert.Equal(t, "09:00", got.PreferredTime)
		assert.Equal(t, "Delivered within 24 hours. Preferred time 09:00, scheduled for 03.01.2024 09:00", got.Note)
	})

	t.Run("preferred time later the same day", func(t *testing.T) {
		got := ComputeDelivery(mytime.ExampleTime, policy, &TimeOfDay{Hour: 15, Minute: 30})

		assert.True(t, at(t, "2024-01-02T15:30:00Z").Equal(got.ScheduledAt))
	})

	t.Run("preferred time equal to earliest is kept", func(t *testing.T) {
		got := ComputeDelivery(mytime.ExampleTime, policy, &TimeOfDay{Hour: 10, Minute: 0})

		assert.True(t, at(t, "2024-01-02T10:00:00Z").Equal(got.ScheduledAt))
	})

	t.Run("seconds are dropped from the preferred moment", func(t *testing.T) {
		got := ComputeDelivery(at(t, "2024-01-01T10:00:42Z"), policy, &TimeOfDay{Hour: 10, Minute: 1})

		assert.True(t, at(t, "2024-01-02T10:01:00Z").Equal(got.ScheduledAt))
	})

	t.Run("lead time comes from policy", func(t *testing.T) {
		short := policy
		short.MinLeadHours = 2

		got := ComputeDelivery(mytime.ExampleTime, short, &TimeOfDay{Hour: 11, Minute: 0})

		assert.Equal(t, 2, got.ETAHours)
		assert.True(t, at(t, "2024-01-02T11:00:00Z").Equal(got.ScheduledAt))
		assert.Contains(t, got.Note, "Delivered within 2 hours")
	})

	t.Run("preferred time is wall clock time of the shop", func(t *testing.T) {
		amsterdam, err := time.LoadLocation("Europe/Amsterdam")
		require.NoError(t, err)
		local := policy
		local.Location = amsterdam

		// 10:00 UTC is 11:00 in Amsterdam, earliest is 11:00 local the next day
		got := ComputeDelivery(mytime.ExampleTime, local, &TimeOfDay{Hour: 10, Minute: 30})

		assert.True(t, at(t, "2024-01-03T10:30:00+01:00").Equal(got.ScheduledAt))
		assert.Contains(t, got.Note, "03.01.2024 10:30")
	})
}
