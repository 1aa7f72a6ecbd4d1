package calendar

import "time"

// TimeWindow is a half-open [Start, End) time-of-day interval
type TimeWindow struct {
	Start string // "15:04"
	End   string // "15:04"
}

// DaySchedule is the effective opening schedule of the clinic for one day
type DaySchedule struct {
	IsOpen    bool
	Morning   *TimeWindow
	Afternoon *TimeWindow
}

// WeekSchedule holds one DaySchedule per weekday, indexed 0=Sunday .. 6=Saturday
type WeekSchedule [7]DaySchedule

// ResolveDaySchedule returns the effective schedule for a date. Public
// holidays substitute the Sunday configuration regardless of the actual
// weekday, which is how the clinic marks itself closed on holidays.
func ResolveDaySchedule(date time.Time, week WeekSchedule) DaySchedule {
	if IsPublicHoliday(date) {
		return week[time.Sunday]
	}
	return week[date.Weekday()]
}

// IsSlotOpen reports whether a time slot falls within the day's opening
// windows. Windows are half-open: a slot exactly at a closing boundary is
// closed, a slot exactly at an opening boundary is open.
func IsSlotOpen(slot string, schedule DaySchedule) bool {
	if !schedule.IsOpen {
		return false
	}

	minute, err := MinuteOfDay(slot)
	if err != nil {
		return false
	}

	return inWindow(minute, schedule.Morning) || inWindow(minute, schedule.Afternoon)
}

func inWindow(minute int, window *TimeWindow) bool {
	if window == nil {
		return false
	}
	start, err := MinuteOfDay(window.Start)
	if err != nil {
		return false
	}
	end, err := MinuteOfDay(window.End)
	if err != nil {
		return false
	}
	return minute >= start && minute < end
}
