package availability

import (
	"time"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

const dateLayout = "2006-01-02"

// IsAbsent reports whether the veterinarian has a recorded absence covering
// the given date. Absence bounds are inclusive at day granularity: the start
// date counts from 00:00:00 and the end date until 23:59:59.
func IsAbsent(vetID string, date time.Time, absences []model.VeterinarianAbsence) bool {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	for _, absence := range absences {
		if absence.VeterinarianID != vetID {
			continue
		}

		start, err := time.Parse(dateLayout, absence.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, absence.EndDate)
		if err != nil {
			continue
		}

		if !day.Before(start) && !day.After(end) {
			return true
		}
	}

	return false
}

// IsNotWorking reports whether the veterinarian's weekly schedule marks the
// date's weekday as a day off. A veterinarian with no schedule row for that
// weekday is treated as working, so staff without a configured schedule keep
// their grid column enabled.
func IsNotWorking(vetID string, date time.Time, schedules []model.VeterinarianSchedule) bool {
	weekday := int(date.Weekday())

	for _, schedule := range schedules {
		if schedule.VeterinarianID == vetID && schedule.DayOfWeek == weekday {
			return !schedule.IsWorking
		}
	}

	return false
}
