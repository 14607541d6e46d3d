package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/studio"

	"github.com/spf13/cobra"
)

var (
	flagShootActor   string
	flagShootMovie   string
	flagShootDate    string
	flagShootScene   string
	flagShootFee     string
	flagShootExclude string
)

var shootingsCmd = &cobra.Command{
	Use:     "shootings",
	Aliases: []string{"shooting"},
	Short:   "List and manage shootings",
	RunE:    runShootingsList,
}

var shootingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all shootings, newest first",
	Args:  cobra.NoArgs,
	RunE:  runShootingsList,
}

var shootingsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one shooting",
	Args:  cobra.ExactArgs(1),
	RunE:  runShootingsShow,
}

var shootingsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Book a shooting (rejected if the fee exceeds the movie's budget)",
	Args:  cobra.NoArgs,
	RunE:  runShootingsAdd,
}

var shootingsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a shooting",
	Args:  cobra.ExactArgs(1),
	RunE:  runShootingsUpdate,
}

var shootingsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a shooting",
	Args:  cobra.ExactArgs(1),
	RunE:  runShootingsDelete,
}

var shootingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a fee fits in a movie's budget",
	Args:  cobra.NoArgs,
	RunE:  runShootingsCheck,
}

func init() {
	for _, c := range []*cobra.Command{shootingsAddCmd, shootingsUpdateCmd} {
		c.Flags().StringVar(&flagShootActor, "actor", "", "Actor id")
		c.Flags().StringVar(&flagShootMovie, "movie", "", "Movie id")
		c.Flags().StringVar(&flagShootDate, "date", "", "Date as YYYY-MM-DD (default today)")
		c.Flags().StringVar(&flagShootScene, "scene", "", "Scene description")
		c.Flags().StringVar(&flagShootFee, "fee", "", "Actor fee (default 0)")
	}
	_ = shootingsAddCmd.MarkFlagRequired("actor")
	_ = shootingsAddCmd.MarkFlagRequired("movie")

	shootingsCheckCmd.Flags().StringVar(&flagShootMovie, "movie", "", "Movie id")
	shootingsCheckCmd.Flags().StringVar(&flagShootFee, "fee", "", "Proposed fee")
	shootingsCheckCmd.Flags().StringVar(&flagShootExclude, "exclude", "", "Shooting id being edited")
	_ = shootingsCheckCmd.MarkFlagRequired("movie")
	_ = shootingsCheckCmd.MarkFlagRequired("fee")

	shootingsDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")

	shootingsCmd.AddCommand(shootingsListCmd, shootingsShowCmd, shootingsAddCmd,
		shootingsUpdateCmd, shootingsDeleteCmd, shootingsCheckCmd)
	rootCmd.AddCommand(shootingsCmd)
}

func renderShootings(title string, rows []model.ShootingRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			idString(r.ID),
			model.FormatDate(r.Date),
			r.ActorName,
			r.MovieTitle,
			cli.OrDash(r.Scene),
			cli.FormatMoney(r.Fee),
		}
	}
	return cli.RenderTable(cli.Table{
		Title:      title,
		Headers:    []string{"ID", "Date", "Actor", "Movie", "Scene", "Fee"},
		Rows:       cells,
		RightAlign: []bool{true, false, false, false, false, true},
	})
}

func runShootingsList(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		rows, err := s.svc.ListShootings(ctx)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("\n  No shootings yet.")
			return nil
		}
		fmt.Println()
		fmt.Print(renderShootings(fmt.Sprintf("Shootings (%d)", len(rows)), rows))
		return nil
	})
}

func runShootingsShow(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("shooting id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		row, err := s.svc.GetShooting(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(renderShootings("", []model.ShootingRow{row}))
		return nil
	})
}

// applyShootingFlags copies the flags that were set onto sh.
func applyShootingFlags(cmd *cobra.Command, sh *model.Shooting) error {
	var err error
	flags := cmd.Flags()
	if flags.Changed("actor") {
		if sh.ActorID, err = studio.ParseID("actor id", flagShootActor); err != nil {
			return err
		}
	}
	if flags.Changed("movie") {
		if sh.MovieID, err = studio.ParseID("movie id", flagShootMovie); err != nil {
			return err
		}
	}
	if flags.Changed("date") {
		if sh.Date, err = studio.ParseDate(flagShootDate); err != nil {
			return err
		}
	}
	if flags.Changed("scene") {
		sh.Scene = flagShootScene
	}
	if flags.Changed("fee") {
		if sh.Fee, err = studio.ParseOptionalAmount("fee", flagShootFee); err != nil {
			return err
		}
	}
	return nil
}

func runShootingsAdd(cmd *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		sh := model.Shooting{Date: model.Day(s.svc.Now())}
		if err := applyShootingFlags(cmd, &sh); err != nil {
			return err
		}
		ch, err := s.svc.CreateShooting(ctx, sh)
		if err != nil {
			return err
		}
		fmt.Printf("  Added shooting #%d\n", ch.ID)
		return nil
	})
}

func runShootingsUpdate(cmd *cobra.Command, args []string) error {
	id, err := studio.ParseID("shooting id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		row, err := s.svc.GetShooting(ctx, id)
		if err != nil {
			return err
		}
		sh := row.Shooting
		if err := applyShootingFlags(cmd, &sh); err != nil {
			return err
		}
		if _, err := s.svc.UpdateShooting(ctx, sh); err != nil {
			return err
		}
		fmt.Printf("  Updated shooting #%d\n", id)
		return nil
	})
}

func runShootingsDelete(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("shooting id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		row, err := s.svc.GetShooting(ctx, id)
		if err != nil {
			return err
		}
		q := fmt.Sprintf("Delete shooting #%d (%s in %s on %s)?",
			id, row.ActorName, row.MovieTitle, model.FormatDate(row.Date))
		ok, err := confirm(q, flagYes)
		if err != nil || !ok {
			return err
		}
		if _, err := s.svc.DeleteShooting(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted shooting #%d\n", id)
		return nil
	})
}

func runShootingsCheck(cmd *cobra.Command, _ []string) error {
	movieID, err := studio.ParseID("movie id", flagShootMovie)
	if err != nil {
		return err
	}
	fee, err := studio.ParseAmount("fee", flagShootFee)
	if err != nil {
		return err
	}
	var exclude int64
	if cmd.Flags().Changed("exclude") {
		if exclude, err = studio.ParseID("shooting id", flagShootExclude); err != nil {
			return err
		}
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		check, err := s.svc.ValidateFee(ctx, movieID, fee, exclude)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("  Fees would total %s of a %s budget", cli.FormatMoney(check.Total), cli.FormatMoney(check.Budget))
		if check.OK {
			fmt.Println(cli.OK(line + ": fits"))
			return nil
		}
		fmt.Println(cli.Alert(line + ": over budget"))
		return check.Err()
	})
}
