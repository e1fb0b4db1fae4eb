package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebook/internal/model"
)

func TestToggleDay(t *testing.T) {
	w := ResetToDefault()

	toggled := ToggleDay(w, model.Tuesday)
	assert.False(t, toggled[model.Tuesday].Enabled)
	assert.True(t, w[model.Tuesday].Enabled, "input snapshot untouched")

	// Ranges survive the toggle so re-enabling restores them.
	assert.Len(t, toggled[model.Tuesday].Ranges, 1)

	back := ToggleDay(toggled, model.Tuesday)
	assert.True(t, back[model.Tuesday].Enabled)
}

func TestAddRange(t *testing.T) {
	w := ResetToDefault()
	r := model.TimeRange{
		Start: model.TimeOfDay{Hour: 19},
		End:   model.TimeOfDay{Hour: 21},
	}

	out := AddRange(w, model.Monday, r)
	require.Len(t, out[model.Monday].Ranges, 2)
	assert.Equal(t, r, out[model.Monday].Ranges[1], "appended, not sorted")
	assert.Len(t, w[model.Monday].Ranges, 1)
}

func TestRemoveRange(t *testing.T) {
	w := ResetToDefault()

	out := RemoveRange(w, model.Monday, 0)
	assert.Empty(t, out[model.Monday].Ranges)

	t.Run("stale index is a no-op", func(t *testing.T) {
		assert.Equal(t, w, RemoveRange(w, model.Monday, 5))
		assert.Equal(t, w, RemoveRange(w, model.Monday, -1))
	})
}

func TestUpdateRange(t *testing.T) {
	w := ResetToDefault()

	out := UpdateRange(w, model.Friday, 0, BoundStart, model.TimeOfDay{Hour: 10})
	assert.Equal(t, 10, out[model.Friday].Ranges[0].Start.Hour)
	assert.Equal(t, 17, out[model.Friday].Ranges[0].End.Hour)
	assert.Equal(t, 8, w[model.Friday].Ranges[0].Start.Hour)

	out = UpdateRange(w, model.Friday, 0, BoundEnd, model.TimeOfDay{Hour: 20})
	assert.Equal(t, 20, out[model.Friday].Ranges[0].End.Hour)

	// The store accepts transiently inverted ranges; validation lives
	// downstream.
	out = UpdateRange(w, model.Friday, 0, BoundEnd, model.TimeOfDay{Hour: 6})
	assert.Equal(t, 6, out[model.Friday].Ranges[0].End.Hour)

	t.Run("out of bounds is a no-op", func(t *testing.T) {
		assert.Equal(t, w, UpdateRange(w, model.Friday, 3, BoundStart, model.TimeOfDay{Hour: 1}))
	})
}
