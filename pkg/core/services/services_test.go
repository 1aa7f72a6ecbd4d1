package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/internal/config"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// mockStore is an in-memory store implementing every service store interface
type mockStore struct {
	veterinarians []model.Veterinarian
	bookings      []model.Booking
	rules         []model.RecurringSlotBlock
	absences      []model.VeterinarianAbsence
	schedules     []model.VeterinarianSchedule
	assignments   []model.SlotAssignment

	// storedAssignmentOverride simulates losing an upsert race: the
	// competing row is kept instead of the incoming one
	storedAssignmentOverride *model.SlotAssignment

	bookingsErr error

	insertedBookings  []model.Booking
	upsertedRules     []model.RecurringSlotBlock
	deactivatedRules  []string
	insertedAbsences  []model.VeterinarianAbsence
	upsertedSchedules []model.VeterinarianSchedule
	statusUpdates     map[string]model.BookingStatus
	moves             []string
	deletedBookings   []string
	deletedAbsences   []string
	deletedSlots      []string
}

func (m *mockStore) GetVeterinarians(_ context.Context, _ string) ([]model.Veterinarian, error) {
	return m.veterinarians, nil
}

func (m *mockStore) GetBookings(_ context.Context, _ string, from, to string) ([]model.Booking, error) {
	if m.bookingsErr != nil {
		return nil, m.bookingsErr
	}
	var result []model.Booking
	for _, b := range m.bookings {
		if b.Date >= from && b.Date <= to {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockStore) GetBooking(_ context.Context, bookingID string) (*model.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == bookingID {
			booking := m.bookings[i]
			return &booking, nil
		}
	}
	return nil, fmt.Errorf("booking %s not found", bookingID)
}

func (m *mockStore) GetRecurringBlocks(_ context.Context, _ string) ([]model.RecurringSlotBlock, error) {
	return m.rules, nil
}

func (m *mockStore) GetAbsences(_ context.Context, _ string) ([]model.VeterinarianAbsence, error) {
	return m.absences, nil
}

func (m *mockStore) GetSchedules(_ context.Context, _ string) ([]model.VeterinarianSchedule, error) {
	return m.schedules, nil
}

func (m *mockStore) GetSlotAssignments(_ context.Context, _ string, date string) ([]model.SlotAssignment, error) {
	var result []model.SlotAssignment
	for _, a := range m.assignments {
		if a.Date == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockStore) UpsertSlotAssignment(_ context.Context, assignment *model.SlotAssignment) error {
	stored := *assignment
	if m.storedAssignmentOverride != nil {
		stored = *m.storedAssignmentOverride
	}
	if stored.CreatedAt == "" {
		stored.CreatedAt = "2024-06-01T09:00:00Z"
	}
	for i := range m.assignments {
		if m.assignments[i].Date == stored.Date && m.assignments[i].TimeSlot == stored.TimeSlot {
			m.assignments[i] = stored
			return nil
		}
	}
	m.assignments = append(m.assignments, stored)
	return nil
}

func (m *mockStore) DeleteSlotAssignment(_ context.Context, _ string, date, timeSlot string) error {
	m.deletedSlots = append(m.deletedSlots, date+" "+timeSlot)
	return nil
}

func (m *mockStore) InsertBooking(_ context.Context, booking *model.Booking) error {
	m.insertedBookings = append(m.insertedBookings, *booking)
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockStore) UpdateBookingStatus(_ context.Context, bookingID string, status model.BookingStatus) error {
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[string]model.BookingStatus)
	}
	m.statusUpdates[bookingID] = status
	return nil
}

func (m *mockStore) MoveBooking(_ context.Context, bookingID, date, timeSlot, endTime string) error {
	m.moves = append(m.moves, fmt.Sprintf("%s %s %s %s", bookingID, date, timeSlot, endTime))
	return nil
}

func (m *mockStore) DeleteBooking(_ context.Context, bookingID string) error {
	m.deletedBookings = append(m.deletedBookings, bookingID)
	return nil
}

func (m *mockStore) InsertRecurringBlock(_ context.Context, rule *model.RecurringSlotBlock) error {
	m.upsertedRules = append(m.upsertedRules, *rule)
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockStore) UpdateRecurringBlock(_ context.Context, rule *model.RecurringSlotBlock) error {
	m.upsertedRules = append(m.upsertedRules, *rule)
	return nil
}

func (m *mockStore) DeactivateRecurringBlock(_ context.Context, ruleID string) error {
	m.deactivatedRules = append(m.deactivatedRules, ruleID)
	for i := range m.rules {
		if m.rules[i].ID == ruleID {
			m.rules[i].IsActive = false
		}
	}
	return nil
}

func (m *mockStore) InsertAbsence(_ context.Context, absence *model.VeterinarianAbsence) error {
	m.insertedAbsences = append(m.insertedAbsences, *absence)
	return nil
}

func (m *mockStore) DeleteAbsence(_ context.Context, absenceID string) error {
	m.deletedAbsences = append(m.deletedAbsences, absenceID)
	return nil
}

func (m *mockStore) UpsertSchedule(_ context.Context, schedule *model.VeterinarianSchedule) error {
	m.upsertedSchedules = append(m.upsertedSchedules, *schedule)
	return nil
}

// pinnedRand makes the auto-assignment tie-break deterministic
type pinnedRand struct{ index int }

func (p pinnedRand) IntN(n int) int { return p.index % n }

func testConfig() *config.Config {
	day := config.DayHours{
		Open:      true,
		Morning:   &config.Window{Start: "08:00", End: "12:00"},
		Afternoon: &config.Window{Start: "14:00", End: "19:00"},
	}
	return &config.Config{
		ClinicID: "clinic-1",
		OpeningHours: map[string]config.DayHours{
			"monday": day, "tuesday": day, "wednesday": day,
			"thursday": day, "friday": day, "saturday": day,
			"sunday": {Open: false},
		},
	}
}

func testStore() *mockStore {
	return &mockStore{
		veterinarians: []model.Veterinarian{
			{ID: "V1", ClinicID: "clinic-1", Name: "Dr Arnaud", IsActive: true},
			{ID: "V2", ClinicID: "clinic-1", Name: "Dr Bernard", IsActive: true},
		},
	}
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(dateLayout, value)
	require.NoError(t, err)
	return date
}

func TestPlanDay_MergesAndComposes(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{{
		ID: "booking-1", ClinicID: "clinic-1", Date: "2024-06-04", Time: "10:00",
		VeterinarianID: "V2", ClientName: "Mme Dupont", Status: model.StatusConfirmed,
	}}
	store.rules = []model.RecurringSlotBlock{{
		ID: "rule-1", ClinicID: "clinic-1", Title: "Chirurgie", VeterinarianID: "V1",
		DayOfWeek: 2, StartTime: "10:00", EndTime: "10:30", IsActive: true,
	}}

	result, err := PlanDay(context.Background(), store, testConfig(), zap.NewNop(), mustDate(t, "2024-06-04"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.RealBookingCount)
	assert.Equal(t, 2, result.SyntheticBookingCount)
	assert.Len(t, result.Bookings, 3)

	assert.Equal(t, "2024-06-04", result.Grid.Date)
	assert.True(t, result.Grid.Schedule.IsOpen)
	require.Len(t, result.Grid.Columns, 2)

	v1 := result.Grid.Columns[0]
	require.Equal(t, "V1", v1.ID)
	for _, cell := range v1.Cells {
		if cell.Time == "10:00" {
			require.NotNil(t, cell.Booking)
			assert.True(t, cell.IsBlocked)
			assert.True(t, cell.Run.IsFirst)
			assert.Equal(t, 2, cell.Run.Count)
		}
	}
}

func TestPlanDay_ClosedHoliday(t *testing.T) {
	// July 14 2025 is a Monday: the Sunday (closed) configuration applies
	result, err := PlanDay(context.Background(), testStore(), testConfig(), zap.NewNop(), mustDate(t, "2025-07-14"))
	require.NoError(t, err)

	assert.False(t, result.Grid.Schedule.IsOpen)
}

func TestPlanDay_StoreError(t *testing.T) {
	store := testStore()
	store.bookingsErr = errors.New("connection refused")

	_, err := PlanDay(context.Background(), store, testConfig(), zap.NewNop(), mustDate(t, "2024-06-04"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.bookingsErr)
}

func TestResolveSlotVeterinarian_ExplicitAssignmentWins(t *testing.T) {
	store := testStore()
	store.assignments = []model.SlotAssignment{{
		ID: "a1", Date: "2024-06-04", TimeSlot: "10:00", VeterinarianID: "V2",
		Type: model.AssignmentManual, CreatedAt: "2024-06-01T08:00:00Z",
	}}

	vetID, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err)

	assert.Equal(t, "V2", vetID)
	assert.Len(t, store.assignments, 1, "nothing new persisted")
}

func TestResolveSlotVeterinarian_AutoAssignsAndPersists(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{{
		ID: "booking-1", Date: "2024-06-04", Time: "10:00",
		VeterinarianID: "V1", Status: model.StatusConfirmed,
	}}

	vetID, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err)

	assert.Equal(t, "V2", vetID, "the only free veterinarian")
	require.Len(t, store.assignments, 1)
	assert.Equal(t, model.AssignmentAuto, store.assignments[0].Type)
	assert.Equal(t, "10:00", store.assignments[0].TimeSlot)
	assert.Equal(t, "V2", store.assignments[0].VeterinarianID)

	// A second resolution reads the persisted assignment back
	again, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err)
	assert.Equal(t, "V2", again)
	assert.Len(t, store.assignments, 1)
}

func TestResolveSlotVeterinarian_ConcurrentWriterWins(t *testing.T) {
	store := testStore()
	// Both veterinarians are free; our pick would be V1, but a concurrent
	// client already stored V2 for the slot
	store.storedAssignmentOverride = &model.SlotAssignment{
		ID: "a-other", Date: "2024-06-04", TimeSlot: "10:00", VeterinarianID: "V2",
		Type: model.AssignmentAuto, CreatedAt: "2024-06-01T08:59:00Z",
	}

	vetID, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err)

	assert.Equal(t, "V2", vetID, "the stored row wins over the local pick")
}

func TestResolveSlotVeterinarian_BlockedSlotExcludesVeterinarian(t *testing.T) {
	store := testStore()
	store.rules = []model.RecurringSlotBlock{{
		ID: "rule-1", Title: "Chirurgie", VeterinarianID: "V1",
		DayOfWeek: 2, StartTime: "10:00", EndTime: "10:30", IsActive: true,
	}}

	vetID, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err)

	assert.Equal(t, "V2", vetID, "a blocked veterinarian is not a candidate")
}

func TestResolveSlotVeterinarian_NoCandidate(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "b1", Date: "2024-06-04", Time: "10:00", VeterinarianID: "V1", Status: model.StatusConfirmed},
		{ID: "b2", Date: "2024-06-04", Time: "10:00", VeterinarianID: "V2", Status: model.StatusConfirmed},
	}

	vetID, err := ResolveSlotVeterinarian(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", pinnedRand{0})
	require.NoError(t, err, "a full slot is not an error")

	assert.Empty(t, vetID)
	assert.Empty(t, store.assignments, "nothing persisted without a pick")
}

func TestReassignSlot(t *testing.T) {
	store := testStore()

	err := ReassignSlot(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", "V1")
	require.NoError(t, err)

	require.Len(t, store.assignments, 1)
	assert.Equal(t, model.AssignmentManual, store.assignments[0].Type)
	assert.Equal(t, "V1", store.assignments[0].VeterinarianID)

	err = ReassignSlot(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00", "V9")
	assert.Error(t, err, "unknown veterinarian is rejected")
}

func TestRemoveSlotAssignment(t *testing.T) {
	store := testStore()

	err := RemoveSlotAssignment(context.Background(), store, testConfig(), zap.NewNop(),
		mustDate(t, "2024-06-04"), "10:00")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-06-04 10:00"}, store.deletedSlots)
}

func TestCreateBooking_Defaults(t *testing.T) {
	store := testStore()

	booking, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date:           "2024-06-04",
		Time:           "09:00",
		VeterinarianID: "V1",
		ClientName:     "Mme Dupont",
		AnimalName:     "Minou",
	}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.SourceManual, booking.Source)
	assert.Equal(t, 15, booking.Duration)
	assert.Equal(t, "09:15", booking.EndTime)
	require.Len(t, store.insertedBookings, 1)
}

func TestCreateBooking_AutoAssignsWithoutPreference(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{{
		ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1", Status: model.StatusConfirmed,
	}}

	booking, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date:       "2024-06-04",
		Time:       "09:00",
		ClientName: "M. Martin",
	}, pinnedRand{0})
	require.NoError(t, err)

	assert.Equal(t, "V2", booking.VeterinarianID)
	assert.True(t, booking.AutoAssigned)
}

func TestCreateBooking_RejectsDoubleBooking(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{{
		ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1", Status: model.StatusConfirmed,
	}}

	_, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date:           "2024-06-04",
		Time:           "09:00",
		VeterinarianID: "V1",
		ClientName:     "M. Martin",
	}, nil)

	require.Error(t, err)
	assert.Empty(t, store.insertedBookings)
}

func TestCreateBooking_RejectsBlockedSlot(t *testing.T) {
	store := testStore()
	store.rules = []model.RecurringSlotBlock{{
		ID: "rule-1", Title: "Chirurgie", VeterinarianID: "V1",
		DayOfWeek: 2, StartTime: "09:00", EndTime: "09:30", IsActive: true,
	}}

	_, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date:           "2024-06-04",
		Time:           "09:00",
		VeterinarianID: "V1",
		ClientName:     "M. Martin",
	}, nil)

	require.Error(t, err, "a recurring block occupies the slot")
}

func TestCreateBooking_CancelledSlotIsFree(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{{
		ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1", Status: model.StatusCancelled,
	}}

	_, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date:           "2024-06-04",
		Time:           "09:00",
		VeterinarianID: "V1",
		ClientName:     "M. Martin",
	}, nil)

	require.NoError(t, err)
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	store := testStore()

	_, err := CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date: "04/06/2024", Time: "09:00",
	}, nil)
	assert.Error(t, err)

	_, err = CreateBooking(context.Background(), store, testConfig(), zap.NewNop(), BookingInput{
		Date: "2024-06-04", Time: "25:00",
	}, nil)
	assert.Error(t, err)
}

func TestChangeBookingStatus_Lifecycle(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "b1", Status: model.StatusPending},
		{ID: "b2", Status: model.StatusCompleted},
	}

	err := ChangeBookingStatus(context.Background(), store, testConfig(), zap.NewNop(), "b1", model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, store.statusUpdates["b1"])

	err = ChangeBookingStatus(context.Background(), store, testConfig(), zap.NewNop(), "b1", model.StatusCompleted)
	assert.Error(t, err, "pending cannot jump to completed")

	err = ChangeBookingStatus(context.Background(), store, testConfig(), zap.NewNop(), "b2", model.StatusCancelled)
	assert.Error(t, err, "completed is terminal")

	err = ChangeBookingStatus(context.Background(), store, testConfig(), zap.NewNop(), "b1", "archived")
	assert.Error(t, err, "unknown status")
}

func TestChangeBookingStatus_SyntheticRejected(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "rule-1:2024-06-04:10:00", RecurringBlockID: "rule-1", Status: model.StatusConfirmed},
	}

	err := ChangeBookingStatus(context.Background(), store, testConfig(), zap.NewNop(),
		"rule-1:2024-06-04:10:00", model.StatusCancelled)
	assert.Error(t, err)
}

func TestMoveBooking(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1",
			Duration: 30, Status: model.StatusConfirmed},
		{ID: "b2", Date: "2024-06-05", Time: "11:00", VeterinarianID: "V1",
			Duration: 15, Status: model.StatusConfirmed},
	}

	err := MoveBooking(context.Background(), store, testConfig(), zap.NewNop(), "b1", "2024-06-05", "10:00")
	require.NoError(t, err)
	require.Len(t, store.moves, 1)
	assert.Equal(t, "b1 2024-06-05 10:00 10:30", store.moves[0], "end time follows the duration")

	err = MoveBooking(context.Background(), store, testConfig(), zap.NewNop(), "b1", "2024-06-05", "11:00")
	assert.Error(t, err, "target slot is taken by b2")
}

func TestMoveBooking_OntoItself(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1",
			Duration: 15, Status: model.StatusConfirmed},
	}

	err := MoveBooking(context.Background(), store, testConfig(), zap.NewNop(), "b1", "2024-06-04", "09:00")
	assert.NoError(t, err, "a booking never collides with itself")
}

func TestDuplicateBooking(t *testing.T) {
	store := testStore()
	store.bookings = []model.Booking{
		{ID: "b1", Date: "2024-06-04", Time: "09:00", VeterinarianID: "V1", Duration: 15,
			ClientName: "Mme Dupont", AnimalName: "Minou", Source: model.SourcePhone,
			Status: model.StatusCompleted},
	}

	duplicate, err := DuplicateBooking(context.Background(), store, testConfig(), zap.NewNop(),
		"b1", "2024-06-11", "09:00", nil)
	require.NoError(t, err)

	assert.NotEqual(t, "b1", duplicate.ID)
	assert.Equal(t, "2024-06-11", duplicate.Date)
	assert.Equal(t, "Mme Dupont", duplicate.ClientName)
	assert.Equal(t, model.SourcePhone, duplicate.Source)
	assert.Equal(t, model.StatusPending, duplicate.Status, "the copy restarts its lifecycle")
}

func TestRemoveBooking(t *testing.T) {
	store := testStore()

	err := RemoveBooking(context.Background(), store, testConfig(), zap.NewNop(), "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, store.deletedBookings)
}

func TestCreateRecurringBlock(t *testing.T) {
	store := testStore()

	rule, err := CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), RecurringBlockInput{
		Title:          "Chirurgie",
		VeterinarianID: "V1",
		DayOfWeek:      2,
		StartTime:      "10:00",
		EndTime:        "11:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rule.ID)
	assert.True(t, rule.IsActive)
	assert.Equal(t, "clinic-1", rule.ClinicID)
	require.Len(t, store.upsertedRules, 1)
}

func TestCreateRecurringBlock_Validation(t *testing.T) {
	store := testStore()
	base := RecurringBlockInput{
		Title: "Chirurgie", VeterinarianID: "V1", DayOfWeek: 2,
		StartTime: "10:00", EndTime: "11:00",
	}

	missingTitle := base
	missingTitle.Title = ""
	_, err := CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), missingTitle)
	assert.Error(t, err)

	invertedTimes := base
	invertedTimes.StartTime = "11:00"
	invertedTimes.EndTime = "10:00"
	_, err = CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), invertedTimes)
	assert.Error(t, err)

	emptyRange := base
	emptyRange.EndTime = base.StartTime
	_, err = CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), emptyRange)
	assert.Error(t, err)

	badDay := base
	badDay.DayOfWeek = 7
	_, err = CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), badDay)
	assert.Error(t, err)

	invertedWindow := base
	invertedWindow.StartDate = "2024-07-01"
	invertedWindow.EndDate = "2024-06-01"
	_, err = CreateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), invertedWindow)
	assert.Error(t, err)

	assert.Empty(t, store.upsertedRules, "nothing persisted on validation failure")
}

func TestUpdateRecurringBlock(t *testing.T) {
	store := testStore()
	store.rules = []model.RecurringSlotBlock{{
		ID: "rule-1", ClinicID: "clinic-1", Title: "Chirurgie", VeterinarianID: "V1",
		DayOfWeek: 2, StartTime: "10:00", EndTime: "10:30", IsActive: true,
	}}

	rule, err := UpdateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), "rule-1",
		RecurringBlockInput{
			Title:          "Radiologie",
			VeterinarianID: "V2",
			DayOfWeek:      4,
			StartTime:      "14:00",
			EndTime:        "15:00",
			StartDate:      "2024-06-01",
		})
	require.NoError(t, err)

	assert.Equal(t, "rule-1", rule.ID, "the rule keeps its identity")
	assert.Equal(t, "Radiologie", rule.Title)
	assert.Equal(t, 4, rule.DayOfWeek)
	assert.True(t, rule.IsActive)

	require.Len(t, store.upsertedRules, 1)
	assert.Equal(t, "V2", store.upsertedRules[0].VeterinarianID)
	assert.Equal(t, "2024-06-01", store.upsertedRules[0].StartDate)
}

func TestUpdateRecurringBlock_Validation(t *testing.T) {
	store := testStore()

	_, err := UpdateRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), "rule-1",
		RecurringBlockInput{
			Title:     "Chirurgie",
			DayOfWeek: 2,
			StartTime: "11:00",
			EndTime:   "10:00",
		})

	require.Error(t, err)
	assert.Empty(t, store.upsertedRules, "nothing persisted on validation failure")
}

func TestRemoveRecurringBlock_SoftDelete(t *testing.T) {
	store := testStore()
	store.rules = []model.RecurringSlotBlock{
		{ID: "rule-1", Title: "Chirurgie", IsActive: true},
		{ID: "rule-2", Title: "Radiologie", IsActive: true},
	}

	err := RemoveRecurringBlock(context.Background(), store, testConfig(), zap.NewNop(), "rule-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"rule-1"}, store.deactivatedRules)

	active, err := ListRecurringBlocks(context.Background(), store, testConfig())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "rule-2", active[0].ID)
}

func TestRecordAbsence(t *testing.T) {
	store := testStore()

	absence, err := RecordAbsence(context.Background(), store, testConfig(), zap.NewNop(),
		"V1", "2024-06-10", "2024-06-14", "", "congés")
	require.NoError(t, err)

	assert.Equal(t, model.AbsenceOther, absence.Type, "missing type defaults to other")
	assert.NotEmpty(t, absence.ID)
	require.Len(t, store.insertedAbsences, 1)
}

func TestRecordAbsence_Validation(t *testing.T) {
	store := testStore()

	_, err := RecordAbsence(context.Background(), store, testConfig(), zap.NewNop(),
		"V1", "2024-06-14", "2024-06-10", model.AbsenceVacation, "")
	assert.Error(t, err, "inverted bounds")

	_, err = RecordAbsence(context.Background(), store, testConfig(), zap.NewNop(),
		"V9", "2024-06-10", "2024-06-14", model.AbsenceVacation, "")
	assert.Error(t, err, "unknown veterinarian")

	assert.Empty(t, store.insertedAbsences)
}

func TestListAbsences(t *testing.T) {
	store := testStore()
	store.absences = []model.VeterinarianAbsence{
		{ID: "a1", VeterinarianID: "V1", StartDate: "2024-06-10", EndDate: "2024-06-14", Type: model.AbsenceVacation},
		{ID: "a2", VeterinarianID: "V2", StartDate: "2024-07-01", EndDate: "2024-07-01", Type: model.AbsenceSick},
	}

	absences, err := ListAbsences(context.Background(), store, testConfig())
	require.NoError(t, err)
	require.Len(t, absences, 2)
	assert.Equal(t, "a1", absences[0].ID)
}

func TestRemoveAbsence(t *testing.T) {
	store := testStore()

	err := RemoveAbsence(context.Background(), store, testConfig(), zap.NewNop(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, store.deletedAbsences)
}

func TestSetWeeklySchedule(t *testing.T) {
	store := testStore()

	err := SetWeeklySchedule(context.Background(), store, testConfig(), zap.NewNop(), model.VeterinarianSchedule{
		VeterinarianID: "V1",
		DayOfWeek:      1,
		IsWorking:      false,
	})
	require.NoError(t, err)

	require.Len(t, store.upsertedSchedules, 1)
	assert.NotEmpty(t, store.upsertedSchedules[0].ID)

	err = SetWeeklySchedule(context.Background(), store, testConfig(), zap.NewNop(), model.VeterinarianSchedule{
		VeterinarianID: "V1",
		DayOfWeek:      9,
	})
	assert.Error(t, err)
}
