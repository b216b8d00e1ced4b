package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/pkg/core/services"
)

// RosterCmd creates the roster command
func RosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "roster <request_file>",
		Short: "Cost every shift of a recurring roster pattern",
		Long:  `Expands the request's RRULE pattern (which must include DTSTART) into shifts, costs each under the award and checks the break between consecutive shifts.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var request services.RosterRequest
			if err := readRequest(args[0], &request); err != nil {
				return err
			}

			app.Logger.Debug("roster command", zap.String("file", args[0]))

			response, err := services.CostRoster(app.Ctx, app.Cfg, app.Calendar, app.Recorder, app.Logger, &request)
			if err != nil {
				return err
			}

			if app.Format != FormatTable {
				return writeJSON(app.Out, response)
			}

			// ANSI color codes
			const (
				colorReset = "\033[0m"
				colorRed   = "\033[31m"
			)

			fmt.Fprintf(app.Out, "\n%-4s%-24s%-8s%-18s%-10s%s\n", "#", "Start", "Hours", "Type", "Cost", "Notes")
			for i, shift := range response.Shifts {
				notes := shift.PublicHoliday
				if shift.Award.BreakCompliance != nil && !shift.Award.BreakCompliance.Compliant {
					notes = colorRed + shift.Award.BreakCompliance.Message + colorReset
				}
				fmt.Fprintf(app.Out, "%-4d%-24s%-8.2f%-18s%-10.2f%s\n",
					i+1,
					shift.Start.Format("Mon 2006-01-02 15:04"),
					shift.Award.TotalHours,
					shift.Award.ShiftType,
					shift.Award.TotalCost,
					notes)
			}

			fmt.Fprintf(app.Out, "\nShifts: %d  Hours: %.2f  Cost: $%.2f  Break violations: %d\n",
				len(response.Shifts), response.TotalHours, response.TotalCost, response.BreakViolations)
			if response.Truncated {
				fmt.Fprintf(app.Out, "Pattern truncated at %d shifts\n", len(response.Shifts))
			}
			fmt.Fprintln(app.Out)

			return nil
		},
	}
}
