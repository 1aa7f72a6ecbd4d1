package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbaillet/vet-planner/pkg/core/grid"
	"github.com/mbaillet/vet-planner/pkg/core/services"
)

const cellWidth = 22

// ViewDayCmd creates the viewDay command
func ViewDayCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewDay [date]",
		Short: "Display the clinic schedule grid for a date",
		Long:  "Resolve and display the full day grid: columns per veterinarian (plus ASV), bookings, recurring blocks and open/closed slots. Date defaults to today.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) > 0 {
				parsed, err := time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", args[0], err)
				}
				date = parsed
			}

			app.Logger.Debug("viewDay command", zap.String("date", date.Format("2006-01-02")))

			result, err := services.PlanDay(app.Ctx, app.Database, app.Cfg, app.Logger, date)
			if err != nil {
				return fmt.Errorf("failed to plan day: %w", err)
			}

			printDayGrid(result)
			return nil
		},
	}
}

func printDayGrid(result *services.PlanDayResult) {
	g := result.Grid

	fmt.Printf("\n📅 Schedule for %s\n\n", g.Date)
	if !g.Schedule.IsOpen {
		fmt.Println("Clinic closed (holiday or weekly closure). Grid shown for reference.")
		fmt.Println()
	}
	fmt.Printf("Bookings: %d real, %d from recurring blocks\n\n",
		result.RealBookingCount, result.SyntheticBookingCount)

	// Header row
	fmt.Printf("%-6s", "")
	for _, column := range g.Columns {
		title := column.Title
		if column.IsDisabled {
			title += " (" + column.AbsenceInfo + ")"
		}
		fmt.Printf("%-*s", cellWidth, truncate(title, cellWidth-1))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("-", 6+cellWidth*len(g.Columns)))

	for slotIndex, slot := range g.Slots {
		fmt.Printf("%-6s", slot)
		for _, column := range g.Columns {
			fmt.Printf("%-*s", cellWidth, truncate(renderCell(column, slotIndex), cellWidth-1))
		}
		fmt.Println()
	}
	fmt.Println()
}

func renderCell(column grid.GridColumn, slotIndex int) string {
	cell := column.Cells[slotIndex]

	switch {
	case cell.IsBlocked:
		if !cell.Run.IsFirst {
			// Continuation of a merged blocked range
			return "  │"
		}
		title := "Bloqué"
		if cell.Booking != nil && cell.Booking.RecurringBlockTitle != "" {
			title = cell.Booking.RecurringBlockTitle
		}
		return fmt.Sprintf("▇ %s (%d)", title, cell.Run.Count)
	case cell.Booking != nil:
		return fmt.Sprintf("%s [%s]", cell.Booking.ClientName, cell.Booking.Status)
	case column.IsDisabled:
		return "×"
	case !cell.IsOpen:
		return "·"
	default:
		return ""
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
