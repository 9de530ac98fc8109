package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlotConflictsWith(t *testing.T) {
	assert.True(t, SlotMorning.ConflictsWith(SlotMorning))
	assert.False(t, SlotMorning.ConflictsWith(SlotAfternoon))
	assert.True(t, SlotMorning.ConflictsWith(SlotFullday))

	assert.False(t, SlotAfternoon.ConflictsWith(SlotMorning))
	assert.True(t, SlotAfternoon.ConflictsWith(SlotAfternoon))
	assert.True(t, SlotAfternoon.ConflictsWith(SlotFullday))

	assert.True(t, SlotFullday.ConflictsWith(SlotMorning))
	assert.True(t, SlotFullday.ConflictsWith(SlotAfternoon))
	assert.True(t, SlotFullday.ConflictsWith(SlotFullday))
}

func TestTimeSlotConflictsWithIsSymmetric(t *testing.T) {
	slots := []TimeSlot{SlotMorning, SlotAfternoon, SlotFullday}
	for _, a := range slots {
		for _, b := range slots {
			assert.Equal(t, a.ConflictsWith(b), b.ConflictsWith(a), "%s vs %s", a, b)
		}
	}
}

func TestTimeSlotConflictingSlots(t *testing.T) {
	assert.ElementsMatch(t, []TimeSlot{SlotMorning, SlotFullday}, SlotMorning.ConflictingSlots())
	assert.ElementsMatch(t, []TimeSlot{SlotAfternoon, SlotFullday}, SlotAfternoon.ConflictingSlots())
	assert.ElementsMatch(t, []TimeSlot{SlotMorning, SlotAfternoon, SlotFullday}, SlotFullday.ConflictingSlots())
}

func TestTimeSlotValid(t *testing.T) {
	assert.True(t, SlotMorning.Valid())
	assert.True(t, SlotAfternoon.Valid())
	assert.True(t, SlotFullday.Valid())
	assert.False(t, TimeSlot("evening").Valid())
	assert.False(t, TimeSlot("").Valid())
	assert.False(t, TimeSlot("Morning").Valid())
}

func TestHoldsStock(t *testing.T) {
	assert.True(t, HoldsStock(StatusPending))
	assert.True(t, HoldsStock(StatusApproved))
	assert.True(t, HoldsStock(StatusPickedUp))
	assert.False(t, HoldsStock(StatusRejected))
	assert.False(t, HoldsStock(StatusReturned))
	assert.False(t, HoldsStock("unknown"))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusApproved, StatusRejected, StatusPickedUp, StatusReturned} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("Approved"))
	assert.False(t, IsValidStatus(""))
}
