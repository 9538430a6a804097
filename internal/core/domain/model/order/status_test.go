package order_test

import (
	"testing"

	"atelier/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("only Completed is terminal", func(t *testing.T) {
		assert.True(t, order.Completed.IsTerminal())

		for _, status := range []order.Status{
			order.Pending, order.InProduction, order.Paused,
			order.Stopped, order.Cancelled, order.Finished,
		} {
			assert.False(t, status.IsTerminal(), status.String())
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "InProduction", order.InProduction.String())
	assert.Equal(t, "Paused", order.Paused.String())
	assert.Equal(t, "Stopped", order.Stopped.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Finished", order.Finished.String())
	assert.Equal(t, "Unknown", order.UnknownStatus.String())
}

func TestParseStatus(t *testing.T) {
	t.Run("round-trips every valid status", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.InProduction, order.Paused,
			order.Stopped, order.Completed, order.Cancelled, order.Finished,
		} {
			parsed, err := order.ParseStatus(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("Dormant")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status")
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Pending.Validate())
	require.NoError(t, order.Finished.Validate())
	require.Error(t, order.UnknownStatus.Validate())
	require.Error(t, order.Status(99).Validate())
}
