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
	flagActorName string
	flagActorRate string
	flagYes       bool
)

var actorsCmd = &cobra.Command{
	Use:     "actors",
	Aliases: []string{"actor"},
	Short:   "List and manage actors",
	RunE:    runActorsList,
}

var actorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all actors",
	Args:  cobra.NoArgs,
	RunE:  runActorsList,
}

var actorsSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find actors whose name contains text",
	Args:  cobra.ExactArgs(1),
	RunE:  runActorsSearch,
}

var actorsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one actor",
	Args:  cobra.ExactArgs(1),
	RunE:  runActorsShow,
}

var actorsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an actor",
	Args:  cobra.NoArgs,
	RunE:  runActorsAdd,
}

var actorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an actor's name or daily rate",
	Args:  cobra.ExactArgs(1),
	RunE:  runActorsUpdate,
}

var actorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an actor without shootings",
	Args:  cobra.ExactArgs(1),
	RunE:  runActorsDelete,
}

func init() {
	for _, c := range []*cobra.Command{actorsAddCmd, actorsUpdateCmd} {
		c.Flags().StringVar(&flagActorName, "name", "", "Full name")
		c.Flags().StringVar(&flagActorRate, "rate", "", "Daily rate, e.g. 350.00")
	}
	_ = actorsAddCmd.MarkFlagRequired("name")
	_ = actorsAddCmd.MarkFlagRequired("rate")
	actorsDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")

	actorsCmd.AddCommand(actorsListCmd, actorsSearchCmd, actorsShowCmd, actorsAddCmd, actorsUpdateCmd, actorsDeleteCmd)
	rootCmd.AddCommand(actorsCmd)
}

func renderActors(title string, actors []model.Actor) string {
	rows := make([][]string, len(actors))
	for i, a := range actors {
		rows[i] = []string{idString(a.ID), a.FullName, cli.FormatMoney(a.DailyRate)}
	}
	return cli.RenderTable(cli.Table{
		Title:      title,
		Headers:    []string{"ID", "Full name", "Daily rate"},
		Rows:       rows,
		RightAlign: []bool{true, false, true},
	})
}

func runActorsList(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		actors, err := s.svc.ListActors(ctx)
		if err != nil {
			return err
		}
		if len(actors) == 0 {
			fmt.Println("\n  No actors yet.")
			return nil
		}
		fmt.Println()
		fmt.Print(renderActors(fmt.Sprintf("Actors (%d)", len(actors)), actors))
		return nil
	})
}

func runActorsSearch(_ *cobra.Command, args []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		actors, err := s.svc.SearchActors(ctx, args[0])
		if err != nil {
			return err
		}
		if len(actors) == 0 {
			fmt.Printf("\n  No actors match %q.\n", args[0])
			return nil
		}
		fmt.Println()
		fmt.Print(renderActors(fmt.Sprintf("Actors matching %q", args[0]), actors))
		return nil
	})
}

func runActorsShow(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("actor id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		actor, err := s.svc.GetActor(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(renderActors("", []model.Actor{actor}))
		return nil
	})
}

func runActorsAdd(_ *cobra.Command, _ []string) error {
	rate, err := studio.ParseAmount("daily rate", flagActorRate)
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		ch, err := s.svc.CreateActor(ctx, model.Actor{FullName: flagActorName, DailyRate: rate})
		if err != nil {
			return err
		}
		fmt.Printf("  Added actor #%d\n", ch.ID)
		return nil
	})
}

func runActorsUpdate(cmd *cobra.Command, args []string) error {
	id, err := studio.ParseID("actor id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		actor, err := s.svc.GetActor(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			actor.FullName = flagActorName
		}
		if cmd.Flags().Changed("rate") {
			if actor.DailyRate, err = studio.ParseAmount("daily rate", flagActorRate); err != nil {
				return err
			}
		}
		if _, err := s.svc.UpdateActor(ctx, actor); err != nil {
			return err
		}
		fmt.Printf("  Updated actor #%d\n", id)
		return nil
	})
}

func runActorsDelete(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("actor id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		actor, err := s.svc.GetActor(ctx, id)
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Delete actor %q?", actor.FullName), flagYes)
		if err != nil || !ok {
			return err
		}
		if _, err := s.svc.DeleteActor(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted actor #%d\n", id)
		return nil
	})
}
