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
	flagMovieTitle    string
	flagMovieDirector string
	flagMovieBudget   string
)

var moviesCmd = &cobra.Command{
	Use:     "movies",
	Aliases: []string{"movie"},
	Short:   "List and manage movies",
	RunE:    runMoviesList,
}

var moviesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all movies",
	Args:  cobra.NoArgs,
	RunE:  runMoviesList,
}

var moviesSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Find movies whose title contains text",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesSearch,
}

var moviesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesShow,
}

var moviesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie",
	Args:  cobra.NoArgs,
	RunE:  runMoviesAdd,
}

var moviesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a movie's title, director or budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesUpdate,
}

var moviesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a movie without shootings",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoviesDelete,
}

func init() {
	for _, c := range []*cobra.Command{moviesAddCmd, moviesUpdateCmd} {
		c.Flags().StringVar(&flagMovieTitle, "title", "", "Title")
		c.Flags().StringVar(&flagMovieDirector, "director", "", "Director (optional)")
		c.Flags().StringVar(&flagMovieBudget, "budget", "", "Budget for actor fees, e.g. 25000")
	}
	_ = moviesAddCmd.MarkFlagRequired("title")
	_ = moviesAddCmd.MarkFlagRequired("budget")
	moviesDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")

	moviesCmd.AddCommand(moviesListCmd, moviesSearchCmd, moviesShowCmd, moviesAddCmd, moviesUpdateCmd, moviesDeleteCmd)
	rootCmd.AddCommand(moviesCmd)
}

func renderMovies(title string, movies []model.Movie) string {
	rows := make([][]string, len(movies))
	for i, m := range movies {
		rows[i] = []string{idString(m.ID), m.Title, cli.OrDash(m.Director), cli.FormatMoney(m.Budget)}
	}
	return cli.RenderTable(cli.Table{
		Title:      title,
		Headers:    []string{"ID", "Title", "Director", "Budget"},
		Rows:       rows,
		RightAlign: []bool{true, false, false, true},
	})
}

func runMoviesList(_ *cobra.Command, _ []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		movies, err := s.svc.ListMovies(ctx)
		if err != nil {
			return err
		}
		if len(movies) == 0 {
			fmt.Println("\n  No movies yet.")
			return nil
		}
		fmt.Println()
		fmt.Print(renderMovies(fmt.Sprintf("Movies (%d)", len(movies)), movies))
		return nil
	})
}

func runMoviesSearch(_ *cobra.Command, args []string) error {
	return withStudio(func(ctx context.Context, s *studioSession) error {
		movies, err := s.svc.SearchMovies(ctx, args[0])
		if err != nil {
			return err
		}
		if len(movies) == 0 {
			fmt.Printf("\n  No movies match %q.\n", args[0])
			return nil
		}
		fmt.Println()
		fmt.Print(renderMovies(fmt.Sprintf("Movies matching %q", args[0]), movies))
		return nil
	})
}

func runMoviesShow(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("movie id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		movie, err := s.svc.GetMovie(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(renderMovies("", []model.Movie{movie}))
		return nil
	})
}

func runMoviesAdd(_ *cobra.Command, _ []string) error {
	budget, err := studio.ParseAmount("budget", flagMovieBudget)
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		ch, err := s.svc.CreateMovie(ctx, model.Movie{
			Title:    flagMovieTitle,
			Director: flagMovieDirector,
			Budget:   budget,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Added movie #%d\n", ch.ID)
		return nil
	})
}

func runMoviesUpdate(cmd *cobra.Command, args []string) error {
	id, err := studio.ParseID("movie id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		movie, err := s.svc.GetMovie(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("title") {
			movie.Title = flagMovieTitle
		}
		if cmd.Flags().Changed("director") {
			movie.Director = flagMovieDirector
		}
		if cmd.Flags().Changed("budget") {
			if movie.Budget, err = studio.ParseAmount("budget", flagMovieBudget); err != nil {
				return err
			}
		}
		if _, err := s.svc.UpdateMovie(ctx, movie); err != nil {
			return err
		}
		fmt.Printf("  Updated movie #%d\n", id)
		return nil
	})
}

func runMoviesDelete(_ *cobra.Command, args []string) error {
	id, err := studio.ParseID("movie id", args[0])
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		movie, err := s.svc.GetMovie(ctx, id)
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Delete movie %q?", movie.Title), flagYes)
		if err != nil || !ok {
			return err
		}
		if _, err := s.svc.DeleteMovie(ctx, id); err != nil {
			return err
		}
		fmt.Printf("  Deleted movie #%d\n", id)
		return nil
	})
}
