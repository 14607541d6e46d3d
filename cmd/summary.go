package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/pipeline"

	"github.com/spf13/cobra"
)

const summaryUpcoming = 5

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Studio dashboard: expenses, budgets and upcoming shootings",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		ov, err := s.svc.Overview(ctx)
		if err != nil {
			return err
		}

		if ov.ExpenseSum.Actors == 0 && ov.BudgetSum.Movies == 0 {
			fmt.Println("\n  No actors or movies yet.")
			fmt.Println("  Start with `filmdesk actors add` and `filmdesk movies add`.")
			return nil
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("FILMDESK  %s", model.FormatDate(ov.GeneratedAt))))
		fmt.Println()

		rows := [][]string{
			{"Actors", cli.FormatNumber(int64(ov.ExpenseSum.Actors))},
			{"Movies", cli.FormatNumber(int64(ov.BudgetSum.Movies))},
			{"Shootings", cli.FormatNumber(int64(ov.Shootings))},
			cli.Separator,
			{"Total fees", cli.FormatMoney(ov.ExpenseSum.Total)},
			{"Mean fees per actor", cli.FormatMoney(ov.ExpenseSum.Mean)},
			cli.Separator,
			{"Total budget", cli.FormatMoney(ov.BudgetSum.TotalBudget)},
			{"Spent", cli.FormatMoney(ov.BudgetSum.TotalSpent)},
			{"Remaining", cli.FormatMoney(ov.BudgetSum.TotalRemaining)},
			{"Mean budget", cli.FormatMoney(ov.BudgetSum.MeanBudget)},
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Metric", "Value"},
			Rows:    rows,
		}))

		if top := pipeline.MostConsumed(ov.Budgets, 3); len(top) > 0 {
			fmt.Println()
			fmt.Println("  Budget consumption")
			for _, b := range top {
				fmt.Printf("  %-24s %s %s\n",
					cli.Truncate(b.Title, 24),
					cli.RenderBudgetBar(b.UsedRatio(), 30),
					cli.FormatPercent(b.UsedRatio()))
			}
		}

		if over := pipeline.OverBudget(ov.Budgets); len(over) > 0 {
			fmt.Println()
			for _, b := range over {
				fmt.Println(cli.Alert(fmt.Sprintf("  %s is over budget by %s", b.Title, cli.FormatMoney(b.Remaining.Neg()))))
			}
		}

		if len(ov.NextWeek) > 0 {
			counts := make([]float64, len(ov.NextWeek))
			for i, d := range ov.NextWeek {
				counts[i] = float64(d.Shootings)
			}
			fmt.Println()
			fmt.Printf("  Next 7 days  %s\n", cli.RenderSparkline(counts))
		}

		if len(ov.Upcoming) > 0 {
			fmt.Println()
			upcoming := ov.Upcoming[:min(len(ov.Upcoming), summaryUpcoming)]
			fmt.Print(renderShootings("Upcoming", upcoming))
		}
		fmt.Println()
		return nil
	})
}
