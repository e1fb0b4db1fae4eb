package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebook/internal/model"
)

func trackerFixture() []model.CareTask {
	return []model.CareTask{
		{ID: "t-1", Tag: model.TagFixed, Name: "medication", Completed: false},
		{ID: "t-2", Tag: model.TagFlexible, Name: "housekeeping", Completed: true},
		{ID: "t-3", Tag: model.TagOptional, Name: "reading", Completed: false},
	}
}

func TestToggleCompletion_InProgress(t *testing.T) {
	list := trackerFixture()

	out, changed := ToggleCompletion(model.StatusInProgress, list, 0)
	require.True(t, changed)
	assert.True(t, out[0].Completed)

	// Exactly one task flipped, nothing else touched.
	assert.True(t, out[1].Completed)
	assert.False(t, out[2].Completed)

	// Input slice untouched.
	assert.False(t, list[0].Completed)
}

func TestToggleCompletion_FlipsBackOnSecondToggle(t *testing.T) {
	list := trackerFixture()

	out, _ := ToggleCompletion(model.StatusInProgress, list, 1)
	assert.False(t, out[1].Completed)

	out, _ = ToggleCompletion(model.StatusInProgress, out, 1)
	assert.True(t, out[1].Completed)
}

func TestToggleCompletion_GuardRejectsOtherStatuses(t *testing.T) {
	// Scenario F included: completed bookings reject the toggle.
	for _, status := range []model.BookingStatus{
		model.StatusPending,
		model.StatusWaiting,
		model.StatusCompleted,
		model.StatusCancelled,
		model.StatusComplaint,
	} {
		t.Run(string(status), func(t *testing.T) {
			list := trackerFixture()
			out, changed := ToggleCompletion(status, list, 0)
			assert.False(t, changed)
			assert.Equal(t, list, out, "tasks must be unchanged")
		})
	}
}

func TestToggleCompletion_StaleIndexIsNoOp(t *testing.T) {
	list := trackerFixture()

	out, changed := ToggleCompletion(model.StatusInProgress, list, 3)
	assert.False(t, changed)
	assert.Equal(t, list, out)

	out, changed = ToggleCompletion(model.StatusInProgress, list, -1)
	assert.False(t, changed)
	assert.Equal(t, list, out)
}
