package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateSlotsSkipsLunch(t *testing.T) {
	slots := EnumerateSlots("10:00:00", "18:00:00")

	assert.Equal(t, []string{
		"10:00:00", "11:00:00", "12:00:00",
		"14:00:00", "15:00:00", "16:00:00", "17:00:00",
	}, slots)
}

func TestEnumerateSlotsInvalidBounds(t *testing.T) {
	assert.Empty(t, EnumerateSlots("18:00:00", "10:00:00"))
	assert.Empty(t, EnumerateSlots("not-a-time", "18:00:00"))
}

func TestParseDateNormalizesToUTCMidnight(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("15/09/2026")
	assert.Error(t, err)
}

func TestWeekdayName(t *testing.T) {
	// 2026-09-15 is a Tuesday.
	d, err := ParseDate("2026-09-15")
	require.NoError(t, err)

	assert.Equal(t, "tuesday", WeekdayName(d))
	assert.True(t, IsValidWeekday("sunday"))
	assert.False(t, IsValidWeekday("funday"))
}

func TestWithinWindow(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	assert.True(t, WithinWindow(now.Add(3*time.Hour), now, 3*time.Hour, 4*time.Hour))
	assert.True(t, WithinWindow(now.Add(4*time.Hour), now, 3*time.Hour, 4*time.Hour))
	assert.False(t, WithinWindow(now.Add(2*time.Hour), now, 3*time.Hour, 4*time.Hour))
	assert.False(t, WithinWindow(now.Add(5*time.Hour), now, 3*time.Hour, 4*time.Hour))
}

func TestSlotTimeUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	date, _ := ParseDate("2026-09-15")
	instant, err := SlotTime(date, "10:00:00", loc)
	require.NoError(t, err)

	assert.Equal(t, 10, instant.Hour())
	assert.Equal(t, loc, instant.Location())
}

func TestCoversDate(t *testing.T) {
	start, _ := ParseDate("2026-09-10")
	end, _ := ParseDate("2026-09-12")

	mid, _ := ParseDate("2026-09-11")
	before, _ := ParseDate("2026-09-09")

	assert.True(t, CoversDate(start, end, start))
	assert.True(t, CoversDate(start, end, mid))
	assert.True(t, CoversDate(start, end, end))
	assert.False(t, CoversDate(start, end, before))
}
