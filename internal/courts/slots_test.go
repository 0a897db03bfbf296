package courts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOpenWeek(open, close int) WeekSchedule {
	day := DaySchedule{OpenHour: open, CloseHour: close}
	return WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

func TestFormatSlot(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatSlot(9, 0))
	assert.Equal(t, "9:30 AM", FormatSlot(9, 30))
	assert.Equal(t, "12:00 PM", FormatSlot(12, 0))
	assert.Equal(t, "1:30 PM", FormatSlot(13, 30))
	assert.Equal(t, "11:30 PM", FormatSlot(23, 30))
	assert.Equal(t, "12:00 AM", FormatSlot(0, 0))
}

func TestDaySlots(t *testing.T) {
	policy := SlotPolicy{Hours: allOpenWeek(9, 12), IntervalMinutes: 30}
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday

	slots := DaySlots(policy, date)
	require.Len(t, slots, 6)

	assert.Equal(t, SlotRef{Date: "2026-03-02", Slot: "9:00 AM"}, slots[0])
	assert.Equal(t, SlotRef{Date: "2026-03-02", Slot: "11:30 AM"}, slots[5])
}

func TestDaySlots_ClosedDay(t *testing.T) {
	hours := allOpenWeek(9, 22)
	hours.Sunday = DaySchedule{Closed: true}
	policy := SlotPolicy{Hours: hours, IntervalMinutes: 30}

	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, DaySlots(policy, sunday))
}

func TestDaySlots_InvertedHoursSkipped(t *testing.T) {
	hours := allOpenWeek(9, 22)
	hours.Monday = DaySchedule{OpenHour: 18, CloseHour: 9}
	policy := SlotPolicy{Hours: hours, IntervalMinutes: 30}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, DaySlots(policy, monday))
}

func TestGenerateCalendar_Horizon(t *testing.T) {
	hours := allOpenWeek(10, 11) // two slots per open day
	hours.Sunday = DaySchedule{Closed: true}
	policy := SlotPolicy{Hours: hours, IntervalMinutes: 30}

	from := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC) // Monday

	// Seven days spanning one closed Sunday: six open days, two slots each.
	slots := GenerateCalendar(policy, from, 7)
	require.Len(t, slots, 12)

	// Chronological order across days.
	assert.Equal(t, "2026-03-02", slots[0].Date)
	assert.Equal(t, "2026-03-07", slots[11].Date)
	for _, s := range slots {
		assert.NotEqual(t, "2026-03-08", s.Date) // the closed Sunday
	}
}

func TestGenerateCalendar_EmptyCases(t *testing.T) {
	policy := SlotPolicy{Hours: allOpenWeek(9, 22), IntervalMinutes: 30}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, GenerateCalendar(policy, from, 0))
	assert.Empty(t, GenerateCalendar(policy, from, -1))
	assert.Empty(t, GenerateCalendar(SlotPolicy{Hours: allOpenWeek(9, 22)}, from, 7))

	closed := WeekSchedule{
		Monday:    DaySchedule{Closed: true},
		Tuesday:   DaySchedule{Closed: true},
		Wednesday: DaySchedule{Closed: true},
		Thursday:  DaySchedule{Closed: true},
		Friday:    DaySchedule{Closed: true},
		Saturday:  DaySchedule{Closed: true},
		Sunday:    DaySchedule{Closed: true},
	}
	assert.Empty(t, GenerateCalendar(SlotPolicy{Hours: closed, IntervalMinutes: 30}, from, 30))
}

func TestWalkSlots_Restartable(t *testing.T) {
	policy := SlotPolicy{Hours: allOpenWeek(9, 22), IntervalMinutes: 30}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := GenerateCalendar(policy, from, 3)
	second := GenerateCalendar(policy, from, 3)
	assert.Equal(t, first, second)
}

func TestWalkSlots_EarlyStop(t *testing.T) {
	policy := SlotPolicy{Hours: allOpenWeek(9, 22), IntervalMinutes: 30}
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	var seen []SlotRef
	WalkSlots(policy, from, 7, func(ref SlotRef) bool {
		seen = append(seen, ref)
		return len(seen) < 3
	})
	assert.Len(t, seen, 3)
}

func TestWeekScheduleValidate(t *testing.T) {
	assert.NoError(t, allOpenWeek(9, 22).Validate())

	bad := allOpenWeek(9, 22)
	bad.Friday = DaySchedule{OpenHour: 22, CloseHour: 9}
	assert.Error(t, bad.Validate())

	outOfRange := allOpenWeek(9, 22)
	outOfRange.Monday = DaySchedule{OpenHour: -1, CloseHour: 10}
	assert.Error(t, outOfRange.Validate())

	closedIgnoresHours := allOpenWeek(9, 22)
	closedIgnoresHours.Monday = DaySchedule{Closed: true, OpenHour: 12, CloseHour: 3}
	assert.NoError(t, closedIgnoresHours.Validate())
}
