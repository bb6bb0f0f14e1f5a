package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rsehgal/adaptest/internal/analytics"
	"github.com/rsehgal/adaptest/internal/assessment"
	"github.com/rsehgal/adaptest/internal/charts"
)

const reportWidth = 72

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Print a plain-text report for a stored session",
	Long: "Renders the analytics for a locally stored session without the TUI:\n" +
		"final estimate, ability progression, item characteristic curve, and\n" +
		"per-topic breakdown. Defaults to the most recent session.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.HistoryRepo()
		ctx := cmd.Context()

		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
		} else {
			entries, err := repo.Recent(ctx, 1)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("no stored sessions; finish an assessment first")
			}
			sessionID = entries[0].SessionID
		}

		results, err := repo.Results(ctx, sessionID)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), renderReport(results))
		return nil
	},
}

func renderReport(results *assessment.Results) string {
	var b strings.Builder
	st := charts.PlainStyles()

	fmt.Fprintf(&b, "Session %s\n", results.SessionID)
	fmt.Fprintf(&b, "final ability  θ %+.2f ± %.2f\n", results.FinalTheta, results.FinalSem)
	fmt.Fprintf(&b, "accuracy       %d%% over %d questions\n",
		int(results.Accuracy*100), results.QuestionsAsked)
	fmt.Fprintf(&b, "tier           %s\n\n", results.Tier)

	progression := analytics.BuildProgression(results.Responses)
	if len(progression) > 0 {
		b.WriteString("Ability progression\n")
		for _, p := range progression {
			mark := "✗"
			if p.Correct {
				mark = "✓"
			}
			fmt.Fprintf(&b, "  Q%-3d %s  θ %+.2f\n", p.Question, mark, p.Theta)
		}
		b.WriteString("\n")
	}

	b.WriteString("Item characteristic curve at final ability\n")
	curve := analytics.ICC(results.FinalTheta, analytics.DefaultCurveOptions())
	b.WriteString(charts.CurvePlot(curve, results.FinalTheta, reportWidth-8, 10, st))
	b.WriteString("\n\n")

	if rows := analytics.NormalizeRadar(results.TopicPerformance); len(rows) > 0 {
		b.WriteString("Per-topic accuracy and proficiency\n")
		b.WriteString(charts.Radar(rows, reportWidth, st))
		b.WriteString("\n")
	}

	return b.String()
}
