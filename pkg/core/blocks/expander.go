package blocks

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

const dateLayout = "2006-01-02"

// ruleWeekdays maps the model's 0=Sunday..6=Saturday convention to rrule weekdays
var ruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// openStart is the DTSTART used for rules with no validity start bound.
// Far enough back that a missing bound imposes no constraint in practice.
var openStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// ExpandForDate expands active recurring block rules into synthetic blocked
// bookings for one date. A rule matches when the date's weekday equals the
// rule's weekday and the date falls inside the rule's validity window; a
// missing window bound imposes no constraint on that side.
//
// Each matching rule yields one 15-minute synthetic booking per step in
// [StartTime, EndTime), exclusive end, so a rule from 08:00 to 09:00 yields
// 08:00, 08:15, 08:30 and 08:45. Rules where StartTime >= EndTime expand to
// nothing; callers log that as a configuration warning.
//
// Results are transient. They are regenerated on every query and never
// persisted, so rule edits are reflected immediately.
func ExpandForDate(date time.Time, rules []model.RecurringSlotBlock) []model.Booking {
	var synthetic []model.Booking

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !ruleAppliesOn(rule, date) {
			continue
		}
		synthetic = append(synthetic, expandRule(rule, date)...)
	}

	return synthetic
}

// ruleAppliesOn checks the rule's weekly recurrence against one date by
// asking its RRULE for an occurrence inside that day.
func ruleAppliesOn(rule model.RecurringSlotBlock, date time.Time) bool {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return false
	}

	opts := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{ruleWeekdays[rule.DayOfWeek]},
		Dtstart:   openStart,
	}

	if rule.StartDate != "" {
		if start, err := time.Parse(dateLayout, rule.StartDate); err == nil {
			opts.Dtstart = start
		}
	}
	if rule.EndDate != "" {
		if end, err := time.Parse(dateLayout, rule.EndDate); err == nil {
			opts.Until = end.Add(24*time.Hour - time.Second)
		}
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return false
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	return len(r.Between(dayStart, dayEnd, true)) > 0
}

// expandRule generates the synthetic bookings for one matching rule on one date
func expandRule(rule model.RecurringSlotBlock, date time.Time) []model.Booking {
	start, err := calendar.MinuteOfDay(rule.StartTime)
	if err != nil {
		return nil
	}
	end, err := calendar.MinuteOfDay(rule.EndTime)
	if err != nil {
		return nil
	}
	if start >= end {
		// Configuration no-op, not an error
		return nil
	}

	dateStr := date.Format(dateLayout)

	var bookings []model.Booking
	for minute := start; minute < end; minute += calendar.SlotMinutes {
		slot := fmt.Sprintf("%02d:%02d", minute/60, minute%60)
		endSlot := fmt.Sprintf("%02d:%02d", (minute+calendar.SlotMinutes)/60, (minute+calendar.SlotMinutes)%60)

		bookings = append(bookings, model.Booking{
			// Deterministic identity so re-expansion is stable and never
			// collides with persisted booking ids
			ID:                        fmt.Sprintf("%s:%s:%s", rule.ID, dateStr, slot),
			ClinicID:                  rule.ClinicID,
			Date:                      dateStr,
			Time:                      slot,
			EndTime:                   endSlot,
			Duration:                  calendar.SlotMinutes,
			VeterinarianID:            rule.VeterinarianID,
			ClientName:                model.BlockedClientName,
			ClientContact:             model.BlockedClientName,
			Status:                    model.StatusConfirmed,
			Source:                    model.SourceBlocked,
			IsBlocked:                 true,
			RecurringBlockID:          rule.ID,
			RecurringBlockTitle:       rule.Title,
			RecurringBlockDescription: rule.Description,
		})
	}

	return bookings
}

// MergeWithBookings combines real bookings with synthetic expansions.
// A synthetic entry whose (date, time, veterinarian) triple matches a real
// occupying booking is dropped, real data always wins.
func MergeWithBookings(real []model.Booking, synthetic []model.Booking) []model.Booking {
	occupied := make(map[string]bool, len(real))
	for _, b := range real {
		if b.OccupiesSlot() {
			occupied[slotKey(b)] = true
		}
	}

	merged := make([]model.Booking, 0, len(real)+len(synthetic))
	merged = append(merged, real...)
	for _, b := range synthetic {
		if occupied[slotKey(b)] {
			continue
		}
		merged = append(merged, b)
	}

	return merged
}

func slotKey(b model.Booking) string {
	return b.Date + "|" + b.Time + "|" + b.VeterinarianID
}
