package assign

import (
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// AssignedVeterinarian returns the veterinarian explicitly assigned to a
// (date, time slot) pair, or "" when no assignment exists. When a store
// returns several rows for the same slot, the earliest-created one wins;
// explicit assignments take precedence over the auto-assignment engine.
func AssignedVeterinarian(date, timeSlot string, assignments []model.SlotAssignment) string {
	var found *model.SlotAssignment

	for i := range assignments {
		a := &assignments[i]
		if a.Date != date || a.TimeSlot != timeSlot {
			continue
		}
		if found == nil || a.CreatedAt < found.CreatedAt {
			found = a
		}
	}

	if found == nil {
		return ""
	}
	return found.VeterinarianID
}
