package calendar

import "fmt"

const (
	// SlotMinutes is the granularity of the clinic grid
	SlotMinutes = 15

	// FirstSlotHour and LastSlotHour bound the displayed day, both inclusive
	FirstSlotHour = 7
	LastSlotHour  = 21
)

// GenerateTimeSlots returns the fixed ordered sequence of time-of-day slots
// the clinic grid displays: "07:00" through "21:00" in 15-minute steps.
// Stateless and always identical, so callers may cache the result.
func GenerateTimeSlots() []string {
	var slots []string
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			if hour == LastSlotHour && minute > 0 {
				break
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// MinuteOfDay converts an "HH:MM" time-of-day string to minutes since
// midnight. Inputs are assumed well-formed by the data-access boundary;
// malformed input returns an error rather than a silent zero.
func MinuteOfDay(hhmm string) (int, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", hhmm)
	}
	return hour*60 + minute, nil
}

// AddMinutes returns the "HH:MM" string that is delta minutes after hhmm.
// The result is clamped to the same day.
func AddMinutes(hhmm string, delta int) (string, error) {
	total, err := MinuteOfDay(hhmm)
	if err != nil {
		return "", err
	}
	total += delta
	if total < 0 {
		total = 0
	}
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}
