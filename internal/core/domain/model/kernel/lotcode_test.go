package kernel_test

import (
	"testing"
	"time"

	"atelier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLotCode(t *testing.T) {
	day := time.Date(2026, time.August, 30, 14, 25, 0, 0, time.UTC)

	t.Run("should format year, padded month and day, and sequence", func(t *testing.T) {
		code, err := kernel.NewLotCode(day, 3)

		require.NoError(t, err)
		assert.Equal(t, "OP-2026-08-30-3", code.String())
		assert.Equal(t, 3, code.Sequence())
		assert.Equal(t, "OP-2026-08-30-", code.DayPrefix())
	})

	t.Run("should ignore the time of day", func(t *testing.T) {
		morning, _ := kernel.NewLotCode(day, 1)
		evening, _ := kernel.NewLotCode(day.Add(8*time.Hour), 1)

		assert.True(t, morning.IsEqual(evening))
	})

	t.Run("should reject sequence below 1", func(t *testing.T) {
		_, err := kernel.NewLotCode(day, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sequence")
	})
}

func TestParseLotCode(t *testing.T) {
	t.Run("should parse what String produced", func(t *testing.T) {
		day := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
		original, err := kernel.NewLotCode(day, 12)
		require.NoError(t, err)

		parsed, err := kernel.ParseLotCode(original.String())

		require.NoError(t, err)
		assert.True(t, original.IsEqual(parsed))
	})

	t.Run("should reject wrong marker", func(t *testing.T) {
		_, err := kernel.ParseLotCode("XX-2026-08-30-1")

		require.Error(t, err)
	})

	t.Run("should reject missing parts", func(t *testing.T) {
		_, err := kernel.ParseLotCode("OP-2026-08-30")

		require.Error(t, err)
	})

	t.Run("should reject non-numeric sequence", func(t *testing.T) {
		_, err := kernel.ParseLotCode("OP-2026-08-30-abc")

		require.Error(t, err)
	})

	t.Run("should reject impossible calendar dates", func(t *testing.T) {
		_, err := kernel.ParseLotCode("OP-2026-02-31-1")

		require.Error(t, err)
	})
}

func TestLotCodeDayPrefix(t *testing.T) {
	t.Run("prefix matches codes of the same day", func(t *testing.T) {
		day := time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)
		code, _ := kernel.NewLotCode(day, 7)

		prefix := kernel.LotCodeDayPrefix(day)

		assert.Equal(t, "OP-2026-08-30-", prefix)
		assert.Equal(t, prefix, code.DayPrefix())
	})
}

func TestLotCode_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var code kernel.LotCode

		require.Error(t, code.Validate())
	})
}
