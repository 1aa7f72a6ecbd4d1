package grid

import (
	"sort"
	"time"

	"github.com/mbaillet/vet-planner/pkg/core/availability"
	"github.com/mbaillet/vet-planner/pkg/core/calendar"
	"github.com/mbaillet/vet-planner/pkg/core/model"
)

// ColumnType distinguishes veterinarian columns from the ASV pseudo-column
type ColumnType string

const (
	ColumnVeterinarian ColumnType = "veterinarian"
	ColumnASV          ColumnType = "asv"
)

// ASVColumnID is the fixed id of the ASV pseudo-column
const ASVColumnID = "asv"

// ShowsClientBookings reports whether real client bookings may appear in a
// column of this type. The ASV column only carries non-veterinarian-specific
// tasks and blocks, never client bookings.
func (t ColumnType) ShowsClientBookings() bool {
	return t == ColumnVeterinarian
}

// Column is one renderable column of the day grid
type Column struct {
	ID          string
	Title       string
	Type        ColumnType
	IsDisabled  bool
	AbsenceInfo string // "Absent", "Repos" or empty; display only
}

// Config carries the clinic settings the grid composer needs
type Config struct {
	// ShowASVColumn prepends the ASV pseudo-column when true
	ShowASVColumn bool

	// ColumnOrder lists veterinarian ids in the clinic's preferred display
	// order. Veterinarians not listed are appended in roster order. When
	// empty, columns are ordered alphabetically by name.
	ColumnOrder []string

	// Week is the clinic's per-weekday opening schedule
	Week calendar.WeekSchedule
}

// GenerateColumns builds the ordered column list for one date. Inactive
// veterinarians are excluded. A veterinarian column is disabled when the
// veterinarian is absent or not scheduled to work that weekday; the ASV
// column is never disabled and never subject to availability checks.
func GenerateColumns(
	veterinarians []model.Veterinarian,
	cfg Config,
	date time.Time,
	absences []model.VeterinarianAbsence,
	schedules []model.VeterinarianSchedule,
) []Column {
	active := make([]model.Veterinarian, 0, len(veterinarians))
	for _, vet := range veterinarians {
		if vet.IsActive {
			active = append(active, vet)
		}
	}

	ordered := orderVeterinarians(active, cfg.ColumnOrder)

	columns := make([]Column, 0, len(ordered)+1)
	if cfg.ShowASVColumn {
		columns = append(columns, Column{
			ID:    ASVColumnID,
			Title: "ASV",
			Type:  ColumnASV,
		})
	}

	for _, vet := range ordered {
		column := Column{
			ID:    vet.ID,
			Title: vet.Name,
			Type:  ColumnVeterinarian,
		}

		switch {
		case availability.IsAbsent(vet.ID, date, absences):
			column.IsDisabled = true
			column.AbsenceInfo = "Absent"
		case availability.IsNotWorking(vet.ID, date, schedules):
			column.IsDisabled = true
			column.AbsenceInfo = "Repos"
		}

		columns = append(columns, column)
	}

	return columns
}

// orderVeterinarians applies the clinic's explicit column order when present,
// appending unknown veterinarians in roster order, and falls back to
// alphabetical ordering by name otherwise.
func orderVeterinarians(veterinarians []model.Veterinarian, columnOrder []string) []model.Veterinarian {
	if len(columnOrder) == 0 {
		sorted := make([]model.Veterinarian, len(veterinarians))
		copy(sorted, veterinarians)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
		return sorted
	}

	byID := make(map[string]model.Veterinarian, len(veterinarians))
	for _, vet := range veterinarians {
		byID[vet.ID] = vet
	}

	ordered := make([]model.Veterinarian, 0, len(veterinarians))
	placed := make(map[string]bool, len(veterinarians))

	for _, id := range columnOrder {
		if vet, ok := byID[id]; ok {
			ordered = append(ordered, vet)
			placed[id] = true
		}
	}

	// New veterinarians unknown to the configured order go at the end
	for _, vet := range veterinarians {
		if !placed[vet.ID] {
			ordered = append(ordered, vet)
		}
	}

	return ordered
}
