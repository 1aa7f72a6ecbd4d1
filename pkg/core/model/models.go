package model

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal returns true if no further status transition is allowed
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether a booking may move from status s to next.
// Legal transitions: pending -> confirmed -> completed, and pending or
// confirmed -> cancelled. Cancelled and completed are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// BookingSource records how a booking entered the system
type BookingSource string

const (
	SourcePhone   BookingSource = "phone"
	SourceWalkIn  BookingSource = "walk_in"
	SourceOnline  BookingSource = "online"
	SourceManual  BookingSource = "manual"
	SourceBlocked BookingSource = "blocked"
)

// BlockedClientName is the sentinel client name carried by synthetic
// bookings generated from recurring block rules. Never real PII.
const BlockedClientName = "BLOQUÉ"

// Booking represents a scheduled (or blocked) unit of clinic time.
// Synthetic bookings generated from recurring block rules carry a non-empty
// RecurringBlockID and are never persisted.
type Booking struct {
	ID       string
	ClinicID string

	Date     string // "2006-01-02"
	Time     string // "15:04", 15-minute aligned
	EndTime  string // "15:04"
	Duration int    // minutes

	// VeterinarianID is empty for unassigned bookings (ASV column)
	VeterinarianID string

	ClientName    string
	ClientContact string
	AnimalName    string
	Reason        string

	Status BookingStatus
	Source BookingSource

	// IsBlocked marks a manual block placed by staff
	IsBlocked bool

	// RecurringBlockID references the rule that generated this entry.
	// Non-empty means the booking is synthetic.
	RecurringBlockID          string
	RecurringBlockTitle       string
	RecurringBlockDescription string

	// AutoAssigned is set when the veterinarian was picked by the
	// auto-assignment engine rather than the client or staff
	AutoAssigned bool
}

// IsSynthetic returns true for bookings expanded from a recurring rule
// rather than persisted rows
func (b Booking) IsSynthetic() bool {
	return b.RecurringBlockID != ""
}

// OccupiesSlot returns true if the booking counts as occupying its slot.
// Cancelled bookings free their slot; synthetic blocks always occupy.
func (b Booking) OccupiesSlot() bool {
	if b.IsSynthetic() {
		return true
	}
	return b.Status != StatusCancelled
}

// RecurringSlotBlock is a recurring block rule. It describes when slots are
// blocked, it is never itself an instance: expansion into concrete slots
// happens transiently at read time.
type RecurringSlotBlock struct {
	ID             string
	ClinicID       string
	Title          string
	Description    string
	VeterinarianID string

	// DayOfWeek uses 0=Sunday .. 6=Saturday
	DayOfWeek int

	StartTime string // "15:04"
	EndTime   string // "15:04", must be after StartTime to have effect

	// StartDate / EndDate bound the validity window ("2006-01-02").
	// An empty bound imposes no constraint on that side.
	StartDate string
	EndDate   string

	IsActive bool
}

// AbsenceType classifies a veterinarian absence
type AbsenceType string

const (
	AbsenceVacation AbsenceType = "vacation"
	AbsenceSick     AbsenceType = "sick"
	AbsenceTraining AbsenceType = "training"
	AbsenceOther    AbsenceType = "other"
)

// VeterinarianAbsence is a date range during which a veterinarian is fully
// unavailable. Bounds are inclusive and compared at day granularity.
type VeterinarianAbsence struct {
	ID             string
	ClinicID       string
	VeterinarianID string
	StartDate      string // "2006-01-02", inclusive
	EndDate        string // "2006-01-02", inclusive
	Type           AbsenceType
	Reason         string
}

// VeterinarianSchedule is one weekday of a veterinarian's standing weekly
// working pattern. Absence of a row for a (vet, weekday) pair means the
// veterinarian is working that day.
type VeterinarianSchedule struct {
	ID             string
	VeterinarianID string
	DayOfWeek      int // 0=Sunday .. 6=Saturday
	IsWorking      bool

	MorningStart   string // "15:04", optional
	MorningEnd     string
	AfternoonStart string
	AfternoonEnd   string
}

// AssignmentType records how a slot assignment was made
type AssignmentType string

const (
	AssignmentAuto   AssignmentType = "auto"
	AssignmentManual AssignmentType = "manual"
)

// SlotAssignment maps a specific (date, time slot) to a veterinarian,
// overriding the auto-assignment engine. Unique per (date, time slot) with
// upsert semantics at the store.
type SlotAssignment struct {
	ID             string
	ClinicID       string
	Date           string // "2006-01-02"
	TimeSlot       string // "15:04"
	VeterinarianID string
	Type           AssignmentType

	// CreatedAt orders assignments when a store returns several rows for
	// the same slot; the earliest one wins on read. RFC 3339.
	CreatedAt string
}

// Veterinarian is a roster entry. Inactive veterinarians are excluded from
// grid columns and from auto-assignment candidate pools.
type Veterinarian struct {
	ID        string
	ClinicID  string
	Name      string
	Specialty string
	IsActive  bool
}
