package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbaillet/vet-planner/pkg/core/model"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return date
}

func testRoster() []model.Veterinarian {
	return []model.Veterinarian{
		{ID: "V2", Name: "Dr Bernard", IsActive: true},
		{ID: "V1", Name: "Dr Arnaud", IsActive: true},
		{ID: "V3", Name: "Dr Claire", IsActive: false},
	}
}

func columnIDs(columns []Column) []string {
	ids := make([]string, 0, len(columns))
	for _, c := range columns {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestGenerateColumns_AlphabeticalFallback(t *testing.T) {
	columns := GenerateColumns(testRoster(), Config{}, mustDate(t, "2024-06-04"), nil, nil)

	assert.Equal(t, []string{"V1", "V2"}, columnIDs(columns),
		"no explicit order: sorted by name, inactive excluded")
}

func TestGenerateColumns_ExplicitOrder(t *testing.T) {
	cfg := Config{ColumnOrder: []string{"V2", "V1"}}
	columns := GenerateColumns(testRoster(), cfg, mustDate(t, "2024-06-04"), nil, nil)

	assert.Equal(t, []string{"V2", "V1"}, columnIDs(columns))
}

func TestGenerateColumns_UnknownOrderEntriesAndNewVets(t *testing.T) {
	// V9 does not exist; V1 is missing from the order and goes to the end
	cfg := Config{ColumnOrder: []string{"V9", "V2"}}
	columns := GenerateColumns(testRoster(), cfg, mustDate(t, "2024-06-04"), nil, nil)

	assert.Equal(t, []string{"V2", "V1"}, columnIDs(columns))
}

func TestGenerateColumns_ASVPrepended(t *testing.T) {
	cfg := Config{ShowASVColumn: true}
	columns := GenerateColumns(testRoster(), cfg, mustDate(t, "2024-06-04"), nil, nil)

	require.Len(t, columns, 3)
	assert.Equal(t, ASVColumnID, columns[0].ID)
	assert.Equal(t, ColumnASV, columns[0].Type)
	assert.False(t, columns[0].IsDisabled)
	assert.False(t, columns[0].Type.ShowsClientBookings())
}

func TestGenerateColumns_AbsentVeterinarian(t *testing.T) {
	absences := []model.VeterinarianAbsence{
		{VeterinarianID: "V1", StartDate: "2024-06-01", EndDate: "2024-06-07", Type: model.AbsenceVacation},
	}

	columns := GenerateColumns(testRoster(), Config{}, mustDate(t, "2024-06-04"), absences, nil)

	require.Len(t, columns, 2)
	assert.True(t, columns[0].IsDisabled)
	assert.Equal(t, "Absent", columns[0].AbsenceInfo)
	assert.False(t, columns[1].IsDisabled)
}

func TestGenerateColumns_DayOff(t *testing.T) {
	tuesday := mustDate(t, "2024-06-04")
	schedules := []model.VeterinarianSchedule{
		{VeterinarianID: "V2", DayOfWeek: 2, IsWorking: false},
	}

	columns := GenerateColumns(testRoster(), Config{}, tuesday, nil, schedules)

	require.Len(t, columns, 2)
	assert.False(t, columns[0].IsDisabled)
	assert.True(t, columns[1].IsDisabled)
	assert.Equal(t, "Repos", columns[1].AbsenceInfo)
}

func TestGenerateColumns_AbsenceTrumpsDayOff(t *testing.T) {
	tuesday := mustDate(t, "2024-06-04")
	absences := []model.VeterinarianAbsence{
		{VeterinarianID: "V1", StartDate: "2024-06-04", EndDate: "2024-06-04"},
	}
	schedules := []model.VeterinarianSchedule{
		{VeterinarianID: "V1", DayOfWeek: 2, IsWorking: false},
	}

	columns := GenerateColumns(testRoster(), Config{}, tuesday, absences, schedules)

	assert.Equal(t, "Absent", columns[0].AbsenceInfo)
}
