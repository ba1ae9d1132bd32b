package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/spf13/cobra"
)

func newMarathonsCmd() *cobra.Command {
	marathonsCmd := &cobra.Command{
		Use:     "marathons",
		Aliases: []string{"marathon"},
		Short:   "Inspect and manage saved marathons",
		Long: `Inspect and manage saved marathons directly in the configured store.

Available subcommands:
  list         - List saved marathons
  show <id>    - Show the movies of one marathon
  delete <id>  - Delete a saved marathon
  move <id> <position> up|down - Move one movie within a marathon`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved marathons",
		Args:  cobra.NoArgs,
		RunE:  runMarathonsList,
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved marathon",
		Args:  cobra.ExactArgs(1),
		RunE:  runMarathonsShow,
	}
	showCmd.Flags().String("sort", "", "order movies by title, release_date, vote_average, runtime or popularity")
	showCmd.Flags().String("order", "asc", "sort order (asc or desc)")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved marathon",
		Args:  cobra.ExactArgs(1),
		RunE:  runMarathonsDelete,
	}

	moveCmd := &cobra.Command{
		Use:   "move <id> <position> up|down",
		Short: "Move a movie one place up or down",
		Long: `Swap the movie at a 1-based position with its neighbour and save the
new order. Moving past either end leaves the marathon unchanged.`,
		Args: cobra.ExactArgs(3),
		RunE: runMarathonsMove,
	}

	marathonsCmd.AddCommand(listCmd, showCmd, deleteCmd, moveCmd)
	return marathonsCmd
}

// storeFailures collects write failures so commands can report them
type storeFailures struct {
	mu   sync.Mutex
	errs []error
}

func (f *storeFailures) record(op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, fmt.Errorf("%s %s: %w", op, key, err))
}

func (f *storeFailures) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return errors.Join(f.errs...)
}

// withApp runs fn against an app that writes straight to the store
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	failures := &storeFailures{}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cfg, appOptions{onFailure: failures.record})
	if err != nil {
		return err
	}

	runErr := fn(ctx, a)
	return errors.Join(runErr, failures.err(), a.Close())
}

func runMarathonsList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		list, err := a.engine.ListMarathons(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No saved marathons")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for _, m := range list {
			rows = append(rows, []string{
				m.ID,
				m.Name,
				strconv.Itoa(len(m.Movies)),
				models.FormatDuration(m.TotalRuntime()),
				m.UpdatedAt.Local().Format(time.DateTime),
			})
		}

		fmt.Fprintln(out, renderTable(
			[]string{"ID", "Name", "Movies", "Duration", "Updated"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			isTerminal(out),
		))
		return nil
	})
}

func runMarathonsShow(cmd *cobra.Command, args []string) error {
	sortFlag, _ := cmd.Flags().GetString("sort")
	orderFlag, _ := cmd.Flags().GetString("order")

	return withApp(cmd, func(ctx context.Context, a *app) error {
		m, err := a.engine.GetMarathon(ctx, args[0])
		if err != nil {
			return err
		}

		movies := m.Movies
		if sortFlag != "" {
			key, err := models.ParseSortKey(sortFlag)
			if err != nil {
				return err
			}
			order, err := models.ParseSortOrder(orderFlag)
			if err != nil {
				return err
			}
			if movies, err = models.SortMovies(movies, key, order); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", m.Name, m.ID)
		fmt.Fprintf(out, "%d movie(s), %s\n", len(movies), models.FormatDuration(m.TotalRuntime()))

		rows := make([][]string, 0, len(movies))
		for i, mv := range movies {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				mv.Title,
				releaseYear(mv.ReleaseDate),
				runtimeCell(mv.Runtime),
				strconv.FormatFloat(mv.VoteAverage, 'f', 1, 64),
			})
		}

		fmt.Fprintln(out, renderTable(
			[]string{"#", "Title", "Year", "Runtime", "Rating"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
			isTerminal(out),
		))
		return nil
	})
}

func runMarathonsDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.engine.DeleteMarathon(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted marathon %s\n", args[0])
		return nil
	})
}

func runMarathonsMove(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return fmt.Errorf("invalid position %q", args[1])
	}

	var delta int
	switch strings.ToLower(args[2]) {
	case "up":
		delta = -1
	case "down":
		delta = 1
	default:
		return fmt.Errorf("direction must be up or down, got %q", args[2])
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		m, err := a.engine.GetMarathon(ctx, args[0])
		if err != nil {
			return err
		}
		if position > len(m.Movies) {
			return fmt.Errorf("position %d is out of range (1-%d)", position, len(m.Movies))
		}

		moved := models.MoveMovie(m.Movies, position-1, delta)
		updated, err := a.engine.UpdateMarathon(ctx, m.ID, m.Name, moved)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, mv := range updated.Movies {
			fmt.Fprintf(out, "%2d. %s\n", i+1, mv.Title)
		}
		return nil
	})
}

func releaseYear(date string) string {
	if year, _, ok := strings.Cut(date, "-"); ok && len(year) == 4 {
		return year
	}
	return "-"
}

func runtimeCell(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return models.FormatDuration(minutes)
}
