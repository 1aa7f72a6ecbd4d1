package assign

import (
	"math/rand"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// Rand is the subset of math/rand used by the auto-assignment engine,
// injectable so tests can pin the tie-break.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.Intn(n) }

// DefaultRand is the package-level source used when callers pass nil
var DefaultRand Rand = defaultRand{}

// AssignVeterinarianToSlot picks a veterinarian for a slot that has no
// explicit preference and no slot assignment. Candidates are active
// veterinarians with no occupying booking at (date, timeSlot); blocked slots
// count as occupied, so a blocked veterinarian is never picked.
//
// Returns "" when no candidate remains, a legitimate outcome the caller
// must surface as unassigned/ASV, never an error. With several candidates
// the pick is uniformly random; callers that need a stable answer must
// persist the result as a SlotAssignment and consult AssignedVeterinarian
// first on later calls.
func AssignVeterinarianToSlot(timeSlot, date string, veterinarians []model.Veterinarian, bookings []model.Booking, rng Rand) string {
	if rng == nil {
		rng = DefaultRand
	}

	taken := make(map[string]bool)
	for _, b := range bookings {
		if b.Date == date && b.Time == timeSlot && b.VeterinarianID != "" && b.OccupiesSlot() {
			taken[b.VeterinarianID] = true
		}
	}

	var candidates []string
	for _, vet := range veterinarians {
		if !vet.IsActive {
			continue
		}
		if taken[vet.ID] {
			continue
		}
		candidates = append(candidates, vet.ID)
	}

	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	default:
		return candidates[rng.IntN(len(candidates))]
	}
}

// ProcessBookingWithoutPreference resolves the veterinarian for a booking
// that expressed no preference. Bookings that already carry a veterinarian
// are returned unchanged; otherwise the auto-assignment engine picks one and
// the booking is stamped as auto-assigned. The veterinarian may remain empty
// when every candidate is already booked.
func ProcessBookingWithoutPreference(booking model.Booking, veterinarians []model.Veterinarian, allBookings []model.Booking, rng Rand) model.Booking {
	if booking.VeterinarianID != "" {
		return booking
	}

	vetID := AssignVeterinarianToSlot(booking.Time, booking.Date, veterinarians, allBookings, rng)
	if vetID == "" {
		return booking
	}

	booking.VeterinarianID = vetID
	booking.AutoAssigned = true
	return booking
}
