package courts

import (
	"time"
)

// SlotRef identifies one bookable time unit: a calendar date plus a 12-hour
// clock label such as "9:00 AM".
type SlotRef struct {
	Date string `json:"date"` // 2006-01-02
	Slot string `json:"slot"` // 3:04 PM
}

// Key returns the composite lookup key used to match slots against
// reservations.
func (s SlotRef) Key() string {
	return s.Date + "#" + s.Slot
}

// SlotPolicy is everything the calendar generator needs: the weekly
// operating-hours record and the slot granularity.
type SlotPolicy struct {
	Hours           WeekSchedule
	IntervalMinutes int
}

// PolicyOf derives the generator input from a court row.
func PolicyOf(court *Court) SlotPolicy {
	interval := court.SlotInterval
	if interval <= 0 {
		interval = 30
	}
	return SlotPolicy{Hours: court.Hours, IntervalMinutes: interval}
}

// FormatSlot renders an hour/minute pair as the canonical 12-hour label.
func FormatSlot(hour, minute int) string {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format("3:04 PM")
}

// WalkSlots enumerates every candidate slot from the day of `from` over
// `horizonDays` days, in chronological order, calling fn for each. Returning
// false from fn stops the walk. Closed days are skipped; a policy with no
// open days or a non-positive horizon yields no slots. The walk is
// restartable: calling it again replays the same sequence.
func WalkSlots(policy SlotPolicy, from time.Time, horizonDays int, fn func(SlotRef) bool) {
	if horizonDays <= 0 || policy.IntervalMinutes <= 0 {
		return
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	for i := 0; i < horizonDays; i++ {
		date := day.AddDate(0, 0, i)
		sched := policy.Hours.Day(date.Weekday())
		if sched.Closed || sched.OpenHour >= sched.CloseHour {
			continue
		}

		dateLabel := date.Format("2006-01-02")
		openMin := sched.OpenHour * 60
		closeMin := sched.CloseHour * 60
		for m := openMin; m < closeMin; m += policy.IntervalMinutes {
			ref := SlotRef{Date: dateLabel, Slot: FormatSlot(m/60, m%60)}
			if !fn(ref) {
				return
			}
		}
	}
}

// GenerateCalendar materializes the full walk as a slice.
func GenerateCalendar(policy SlotPolicy, from time.Time, horizonDays int) []SlotRef {
	var out []SlotRef
	WalkSlots(policy, from, horizonDays, func(ref SlotRef) bool {
		out = append(out, ref)
		return true
	})
	return out
}

// DaySlots enumerates the slots of one specific date under the policy.
func DaySlots(policy SlotPolicy, date time.Time) []SlotRef {
	return GenerateCalendar(policy, date, 1)
}
