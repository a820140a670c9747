package calendar

import (
	"fmt"
	"time"
)

// Slots are fixed-width one hour blocks, serialized as "HH:MM:SS" on the
// wire. The 13:00 block is the shop-wide lunch hour and is never offered,
// no matter what an employee's configured hours say.
const (
	SlotLayout = "15:04:05"
	DateLayout = "2006-01-02"

	LunchSlot = "13:00:00"
)

// Weekday names form a fixed locale-independent enumeration; schedule
// records are keyed by these.
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

func WeekdayName(date time.Time) string {
	return weekdayNames[int(date.Weekday())]
}

func IsValidWeekday(name string) bool {
	for _, w := range weekdayNames {
		if w == name {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date value.
// All persisted dates are normalized this way so equality comparisons work
// across drivers.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// DateOnly strips the time-of-day component, keeping the calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseSlot validates an "HH:MM:SS" slot string.
func ParseSlot(s string) (time.Time, error) {
	return time.Parse(SlotLayout, s)
}

// SlotTime combines a date and a slot string into a wall-clock instant in
// the given location.
func SlotTime(date time.Time, slot string, loc *time.Location) (time.Time, error) {
	t, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0,
		loc,
	), nil
}

// EnumerateSlots lists hourly candidate slots from start (inclusive) to end
// (exclusive), skipping the lunch hour. Malformed or inverted bounds yield
// an empty list.
func EnumerateSlots(startTime, endTime string) []string {
	start, err := ParseSlot(startTime)
	if err != nil {
		return nil
	}
	end, err := ParseSlot(endTime)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(time.Hour) {
		slot := cur.Format(SlotLayout)
		if slot == LunchSlot {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// SlotLabel renders a slot for human-facing messages ("10:00 AM" style used
// by the notification templates).
func SlotLabel(slot string) string {
	t, err := ParseSlot(slot)
	if err != nil {
		return slot
	}
	return t.Format("3:04 PM")
}

// DateLabel renders a date for human-facing messages.
func DateLabel(date time.Time) string {
	return fmt.Sprintf("%s %02d/%02d/%04d",
		WeekdayName(date), date.Day(), int(date.Month()), date.Year())
}

// IsPast reports whether the slot instant is strictly before now.
func IsPast(slotInstant, now time.Time) bool {
	return slotInstant.Before(now)
}

// WithinWindow reports whether the slot instant falls inside
// [now+from, now+to].
func WithinWindow(slotInstant, now time.Time, from, to time.Duration) bool {
	lo := now.Add(from)
	hi := now.Add(to)
	return !slotInstant.Before(lo) && !slotInstant.After(hi)
}

// CoversDate reports whether date falls inside the inclusive range
// [start, end]. All three are expected to be DateOnly-normalized.
func CoversDate(start, end, date time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
