package grid

import (
	"time"

	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// ManualBlockIdentity is the block identity shared by ad hoc blocks placed
// by staff, as opposed to blocks generated from a recurring rule
const ManualBlockIdentity = "manual"

// RunInfo is per-slot metadata for merged-cell rendering of blocked ranges.
// The renderer draws one cell spanning Count slots at the first slot of each
// run and skips the rest.
type RunInfo struct {
	IsFirst bool
	Count   int
}

// Cell is one (time slot, column) position of the day grid
type Cell struct {
	Time string

	// Booking occupying this cell, nil when the cell is empty
	Booking *model.Booking

	// IsOpen reflects the clinic's opening schedule for this time
	IsOpen bool

	// IsBlocked is true when the occupying booking is a block (manual,
	// recurring or sentinel-named)
	IsBlocked bool

	// Run is only meaningful for blocked cells
	Run RunInfo
}

// GridColumn is a column together with its resolved cells
type GridColumn struct {
	Column
	Cells []Cell
}

// DayGrid is the full renderable structure for one clinic day
type DayGrid struct {
	Date     string
	Schedule calendar.DaySchedule
	Slots    []string
	Columns  []GridColumn
}

// ComposeDay builds the renderable grid for one date from the merged booking
// list (real bookings plus recurring-block expansions). Bookings are
// partitioned by (time, column): bookings without a veterinarian land in the
// ASV column, subject to its no-client-bookings rule. Contiguous blocked
// slots sharing a block identity are annotated for merged-cell rendering.
func ComposeDay(
	date time.Time,
	veterinarians []model.Veterinarian,
	cfg Config,
	absences []model.VeterinarianAbsence,
	schedules []model.VeterinarianSchedule,
	bookings []model.Booking,
) DayGrid {
	slots := calendar.GenerateTimeSlots()
	daySchedule := calendar.ResolveDaySchedule(date, cfg.Week)
	columns := GenerateColumns(veterinarians, cfg, date, absences, schedules)

	dateStr := date.Format("2006-01-02")

	// Partition occupying bookings by (time, column id)
	byCell := make(map[string]*model.Booking)
	for i := range bookings {
		b := &bookings[i]
		if b.Date != dateStr || !b.OccupiesSlot() {
			continue
		}
		columnID := b.VeterinarianID
		if columnID == "" {
			columnID = ASVColumnID
		}
		key := b.Time + "|" + columnID
		if existing, ok := byCell[key]; ok {
			// Real bookings take precedence over synthetics; merge/dedup
			// upstream should already have handled this
			if existing.IsSynthetic() && !b.IsSynthetic() {
				byCell[key] = b
			}
			continue
		}
		byCell[key] = b
	}

	grid := DayGrid{
		Date:     dateStr,
		Schedule: daySchedule,
		Slots:    slots,
		Columns:  make([]GridColumn, 0, len(columns)),
	}

	for _, column := range columns {
		cells := make([]Cell, 0, len(slots))
		for _, slot := range slots {
			cell := Cell{
				Time:   slot,
				IsOpen: calendar.IsSlotOpen(slot, daySchedule),
			}

			if b, ok := byCell[slot+"|"+column.ID]; ok {
				if isBlockedBooking(*b) {
					cell.Booking = b
					cell.IsBlocked = true
				} else if column.Type.ShowsClientBookings() {
					cell.Booking = b
				}
				// Client bookings never render in the ASV column
			}

			cells = append(cells, cell)
		}

		annotateBlockRuns(cells)

		grid.Columns = append(grid.Columns, GridColumn{Column: column, Cells: cells})
	}

	return grid
}

// isBlockedBooking classifies a booking as a block via its flag, its
// recurring rule back-reference, or the sentinel client name
func isBlockedBooking(b model.Booking) bool {
	return b.IsBlocked || b.IsSynthetic() || b.ClientName == model.BlockedClientName
}

// blockIdentity groups blocked slots for merged rendering: slots from the
// same recurring rule share that rule's id, ad hoc blocks share the literal
// manual identity
func blockIdentity(b *model.Booking) string {
	if b.RecurringBlockID != "" {
		return b.RecurringBlockID
	}
	return ManualBlockIdentity
}

// annotateBlockRuns walks a column's cells and marks maximal contiguous runs
// of blocked slots sharing one block identity. Adjacent runs with different
// identities stay separate even when contiguous in time.
func annotateBlockRuns(cells []Cell) {
	i := 0
	for i < len(cells) {
		if !cells[i].IsBlocked || cells[i].Booking == nil {
			i++
			continue
		}

		identity := blockIdentity(cells[i].Booking)
		j := i + 1
		for j < len(cells) && cells[j].IsBlocked && cells[j].Booking != nil && blockIdentity(cells[j].Booking) == identity {
			j++
		}

		count := j - i
		for k := i; k < j; k++ {
			cells[k].Run = RunInfo{IsFirst: k == i, Count: count}
		}

		i = j
	}
}
