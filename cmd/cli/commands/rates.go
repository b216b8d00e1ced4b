package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jakechorley/care-rostering/pkg/core/award"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
)

// ratesOutput is the JSON form of the rates command
type ratesOutput struct {
	Rates                 award.Rates           `json:"rates"`
	MinBreakRequiredHours float64               `json:"min_break_required_hours"`
	PublicHolidays        []holidays.Definition `json:"public_holidays"`
}

// RatesCmd creates the rates command
func RatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the award rate table and configured public holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := award.SCHADSRates()

			if app.Format != FormatTable {
				return writeJSON(app.Out, ratesOutput{
					Rates:                 rates,
					MinBreakRequiredHours: rates.BreakRule.MinimumHours,
					PublicHolidays:        app.Cfg.PublicHolidays,
				})
			}

			fmt.Fprintf(app.Out, "\nSCHADS award rates (MA000019, simplified)\n\n")

			levels := make([]int, 0, len(rates.LevelMultipliers))
			for level := range rates.LevelMultipliers {
				levels = append(levels, level)
			}
			sort.Ints(levels)
			for _, level := range levels {
				fmt.Fprintf(app.Out, "  Level %d:                %.2fx\n", level, rates.LevelMultipliers[level])
			}

			fmt.Fprintf(app.Out, "  Saturday:               %.2fx\n", rates.Saturday)
			fmt.Fprintf(app.Out, "  Sunday:                 %.2fx\n", rates.Sunday)
			fmt.Fprintf(app.Out, "  Public holiday:         %.2fx\n", rates.PublicHoliday)
			fmt.Fprintf(app.Out, "  Overtime (first %.0fh):   %.2fx\n", rates.OvertimeFirstTierHours, rates.OvertimeFirstTier)
			fmt.Fprintf(app.Out, "  Overtime (after):       %.2fx\n", rates.OvertimeAfterTier)
			fmt.Fprintf(app.Out, "  Sleepover:              %.2fx\n", rates.Sleepover)
			fmt.Fprintf(app.Out, "  Evening (%02d:00-%02d:00):  %.2fx (not applied)\n", rates.EveningStartHour, rates.EveningEndHour, rates.Evening)
			fmt.Fprintf(app.Out, "  Ordinary hours limit:   %.1fh\n", rates.OrdinaryHoursThreshold)
			fmt.Fprintf(app.Out, "  Minimum break:          %.1fh\n", rates.BreakRule.MinimumHours)

			fmt.Fprintf(app.Out, "\nPublic holidays (%d):\n", len(app.Cfg.PublicHolidays))
			for _, holiday := range app.Cfg.PublicHolidays {
				fmt.Fprintf(app.Out, "  %-20s %s\n", holiday.Name, holiday.RRule)
			}
			fmt.Fprintln(app.Out)

			return nil
		},
	}
}
