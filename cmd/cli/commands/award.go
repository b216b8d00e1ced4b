package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/pkg/core/award"
	"github.com/jakechorley/care-rostering/pkg/core/services"
)

// AwardCmd creates the award command
func AwardCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "award <request_file>",
		Short: "Cost a shift under the SCHADS award",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var request services.AwardRequest
			if err := readRequest(args[0], &request); err != nil {
				return err
			}

			app.Logger.Debug("award command", zap.String("file", args[0]))

			response, err := services.CalculateAward(app.Ctx, app.Cfg, app.Calendar, app.Recorder, app.Logger, &request)
			if err != nil {
				return err
			}

			if app.Format == FormatTable {
				fmt.Fprintf(app.Out, "\nShift %s to %s\n",
					request.Start.Format("Mon 2006-01-02 15:04"), request.End.Format("Mon 2006-01-02 15:04"))
				if response.PublicHoliday != "" {
					fmt.Fprintf(app.Out, "Public holiday: %s\n", response.PublicHoliday)
				}
				printAward(app.Out, response.Award)
				return nil
			}
			return writeJSON(app.Out, response)
		},
	}
}

func printAward(w io.Writer, result *award.Result) {
	fmt.Fprintf(w, "Type: %s\n\n", result.ShiftType.Description())

	fmt.Fprintf(w, "%-22s%-8s%-12s%s\n", "Segment", "Hours", "Multiplier", "Penalty")
	for _, segment := range result.Breakdown {
		fmt.Fprintf(w, "%-22s%-8.2f%-12.2f%s\n", segment.Type, segment.Hours, segment.RateMultiplier, segment.PenaltyApplied)
	}

	fmt.Fprintf(w, "\nOrdinary hours: %.2f\n", result.OrdinaryHours)
	fmt.Fprintf(w, "Overtime hours: %.2f\n", result.OvertimeHours)
	fmt.Fprintf(w, "Total cost:     $%.2f\n", result.TotalCost)

	if result.BreakCompliance != nil {
		fmt.Fprintf(w, "Break:          %s\n", result.BreakCompliance.Message)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning:        %s\n", warning)
	}
	fmt.Fprintln(w)
}
