package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/pkg/core/matching"
	"github.com/jakechorley/care-rostering/pkg/core/services"
)

// MatchCmd creates the match command
func MatchCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "match <request_file>",
		Short: "Rank workers for a shift",
		Long:  `Scores every worker in the request against the shift and prints them ranked by total score. The request file may be YAML or JSON; use - to read stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var request services.MatchRequest
			if err := readRequest(args[0], &request); err != nil {
				return err
			}

			app.Logger.Debug("match command", zap.String("file", args[0]), zap.Int("workers", len(request.Workers)))

			response, err := services.RankWorkers(app.Ctx, app.Cfg, app.Recorder, app.Logger, &request)
			if err != nil {
				return err
			}

			if app.Format == FormatTable {
				printRanking(app.Out, response.Ranking)
				return nil
			}
			return writeJSON(app.Out, response)
		},
	}
}

func printRanking(w io.Writer, ranking *matching.RankingResult) {
	fmt.Fprintf(w, "\nShift %s: %d eligible of %d candidates\n\n", ranking.ShiftID, ranking.EligibleWorkers, ranking.TotalCandidates)

	nameColWidth := 20
	for _, match := range ranking.Matches {
		if len(match.FullName) > nameColWidth {
			nameColWidth = len(match.FullName)
		}
	}
	nameColWidth += 2

	fmt.Fprintf(w, "%-6s%-*s%-8s%-7s%-7s%-7s%-7s%-7s%-10s\n",
		"Rank", nameColWidth, "Worker", "Total", "Cert", "Train", "Exp", "Dist", "Cost", "Km")
	fmt.Fprintln(w, strings.Repeat("-", 6+nameColWidth+8+7*5+10))

	for _, match := range ranking.Matches {
		rank := "-"
		if match.Rank > 0 {
			rank = fmt.Sprintf("%d", match.Rank)
		}
		distance := "n/a"
		if match.DistanceKm != nil {
			distance = fmt.Sprintf("%.2f", *match.DistanceKm)
		}

		fmt.Fprintf(w, "%-6s%-*s%-8.3f%-7.2f%-7.2f%-7.2f%-7.2f%-7.2f%-10s\n",
			rank, nameColWidth, match.FullName,
			match.TotalScore, match.CertificationScore, match.TrainingScore,
			match.ExperienceScore, match.DistanceScore, match.CostScore, distance)

		if match.Excluded {
			fmt.Fprintf(w, "      excluded: %s\n", match.ExclusionReason)
		}
		for _, warning := range match.Warnings {
			fmt.Fprintf(w, "      warning: %s\n", warning)
		}
		for _, e := range match.Errors {
			fmt.Fprintf(w, "      error: %s\n", e)
		}
	}
	fmt.Fprintln(w)
}
