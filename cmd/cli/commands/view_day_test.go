package commands

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mbaillet/vet-planner/pkg/core/grid"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "long…", truncate("longer", 5))

	// Accented names must truncate on rune boundaries, never mid-sequence
	truncated := truncate("Bloqué chirurgie générale", 10)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, "Bloqué ch…", truncated)

	assert.Equal(t, "Mme Bélan…", truncate("Mme Bélanger-Côté", 10))
	assert.True(t, utf8.ValidString(truncate("ééééééé", 4)))
}

func TestRenderCell(t *testing.T) {
	booking := model.Booking{ClientName: "Mme Dupont", Status: model.StatusConfirmed}
	blocked := model.Booking{RecurringBlockID: "rule-1", RecurringBlockTitle: "Chirurgie", IsBlocked: true}

	column := grid.GridColumn{
		Column: grid.Column{ID: "V1", Type: grid.ColumnVeterinarian},
		Cells: []grid.Cell{
			{Time: "08:00", IsOpen: true, Booking: &booking},
			{Time: "08:15", IsOpen: true, Booking: &blocked, IsBlocked: true,
				Run: grid.RunInfo{IsFirst: true, Count: 2}},
			{Time: "08:30", IsOpen: true, Booking: &blocked, IsBlocked: true,
				Run: grid.RunInfo{IsFirst: false, Count: 2}},
			{Time: "08:45", IsOpen: true},
			{Time: "13:00", IsOpen: false},
		},
	}

	assert.Equal(t, "Mme Dupont [confirmed]", renderCell(column, 0))
	assert.Equal(t, "▇ Chirurgie (2)", renderCell(column, 1))
	assert.Equal(t, "  │", renderCell(column, 2), "continuation rows of a merged block")
	assert.Equal(t, "", renderCell(column, 3))
	assert.Equal(t, "·", renderCell(column, 4))

	disabled := column
	disabled.IsDisabled = true
	assert.Equal(t, "×", renderCell(disabled, 3))
}
