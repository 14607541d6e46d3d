package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/pipeline"
	"github.com/theirongolddev/filmdesk/internal/studio"

	"github.com/spf13/cobra"
)

var flagPeriod string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Shootings in a period, soonest first",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Fee totals per actor",
	Args:  cobra.NoArgs,
	RunE:  runExpenses,
}

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Aliases: []string{"budgets"},
	Short:   "Budget consumption per movie",
	Args:    cobra.NoArgs,
	RunE:    runBudget,
}

func init() {
	scheduleCmd.Flags().StringVarP(&flagPeriod, "period", "p", "",
		"all, today, week, month or upcoming (default from config)")
	rootCmd.AddCommand(scheduleCmd, expensesCmd, budgetCmd)
}

func runSchedule(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		name := flagPeriod
		if name == "" {
			name = s.cfg.Schedule.DefaultPeriod
		}
		period, err := studio.ParsePeriod(name)
		if err != nil {
			return err
		}

		rows, err := s.svc.Schedule(ctx, period)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Printf("\n  Nothing scheduled (%s).\n", period.Label())
			return nil
		}
		fmt.Println()
		fmt.Print(renderShootings(fmt.Sprintf("Schedule · %s", period.Label()), rows))
		return nil
	})
}

func runExpenses(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		expenses, sum, err := s.svc.Expenses(ctx)
		if err != nil {
			return err
		}
		if len(expenses) == 0 {
			fmt.Println("\n  No actors yet.")
			return nil
		}

		rows := make([][]string, 0, len(expenses)+3)
		for _, e := range expenses {
			rows = append(rows, []string{
				idString(e.ActorID),
				e.FullName,
				cli.FormatNumber(int64(e.Shootings)),
				cli.FormatMoney(e.TotalFee),
			})
		}
		rows = append(rows,
			cli.Separator,
			[]string{"", fmt.Sprintf("TOTAL (%d actors)", sum.Actors), "", cli.FormatMoney(sum.Total)},
			[]string{"", "MEAN", "", cli.FormatMoney(sum.Mean)},
		)

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Expenses per actor",
			Headers:    []string{"ID", "Actor", "Shootings", "Total fee"},
			Rows:       rows,
			RightAlign: []bool{true, false, true, true},
		}))
		return nil
	})
}

func runBudget(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		budgets, sum, err := s.svc.Budgets(ctx)
		if err != nil {
			return err
		}
		if len(budgets) == 0 {
			fmt.Println("\n  No movies yet.")
			return nil
		}

		rows := make([][]string, 0, len(budgets)+4)
		for _, b := range budgets {
			rows = append(rows, []string{
				b.Title,
				cli.FormatMoney(b.Budget),
				cli.FormatMoney(b.Spent),
				cli.FormatMoney(b.Remaining),
				cli.RenderBudgetBar(b.UsedRatio(), 12) + " " + cli.FormatPercent(b.UsedRatio()),
			})
		}
		rows = append(rows,
			cli.Separator,
			[]string{fmt.Sprintf("TOTAL (%d movies)", sum.Movies),
				cli.FormatMoney(sum.TotalBudget), cli.FormatMoney(sum.TotalSpent), cli.FormatMoney(sum.TotalRemaining), ""},
			[]string{"MEAN BUDGET", cli.FormatMoney(sum.MeanBudget), "", "", ""},
		)

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Budget per movie",
			Headers:    []string{"Movie", "Budget", "Spent", "Remaining", "Used"},
			Rows:       rows,
			RightAlign: []bool{false, true, true, true, false},
			Alert: func(i int) bool {
				return i < len(budgets) && budgets[i].OverBudget()
			},
		}))

		if over := pipeline.OverBudget(budgets); len(over) > 0 {
			fmt.Println(cli.Alert(fmt.Sprintf("  %d movie(s) over budget", len(over))))
		}
		return nil
	})
}
