package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTimeSlots_Shape(t *testing.T) {
	slots := GenerateTimeSlots()

	require.Len(t, slots, 57)
	assert.Equal(t, "07:00", slots[0])
	assert.Equal(t, "21:00", slots[len(slots)-1])

	// Strictly increasing in 15-minute steps
	previous, err := MinuteOfDay(slots[0])
	require.NoError(t, err)
	for _, slot := range slots[1:] {
		minute, err := MinuteOfDay(slot)
		require.NoError(t, err)
		assert.Equal(t, previous+SlotMinutes, minute, "slot %s", slot)
		previous = minute
	}
}

func TestGenerateTimeSlots_Idempotent(t *testing.T) {
	assert.Equal(t, GenerateTimeSlots(), GenerateTimeSlots())
}

func TestMinuteOfDay(t *testing.T) {
	minute, err := MinuteOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, minute)

	minute, err = MinuteOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, minute)

	_, err = MinuteOfDay("25:00")
	assert.Error(t, err)

	_, err = MinuteOfDay("abc")
	assert.Error(t, err)
}

func TestAddMinutes(t *testing.T) {
	result, err := AddMinutes("08:45", 15)
	require.NoError(t, err)
	assert.Equal(t, "09:00", result)

	result, err = AddMinutes("10:00", 30)
	require.NoError(t, err)
	assert.Equal(t, "10:30", result)
}
