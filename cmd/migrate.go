package cmd

import (
	"fmt"

	"github.com/killallgit/marathon-api/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Manage the sqlite schema used by the sqlite storage backend.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Long: `Bring the database schema up to date.

Tables are created when missing and missing columns and indexes are added.
Existing data is never dropped.`,
		Args: cobra.NoArgs,
		RunE: runMigrateUp,
	}

	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Args:  cobra.NoArgs,
		RunE:  runMigrateStatus,
	}

	migrateUpCmd.Flags().Bool("dry-run", false, "show what would be done without making changes")
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
	return migrateCmd
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printMigrationStatus(cmd, db)
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Database %s is up to date\n", cfg.Database.Path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return printMigrationStatus(cmd, db)
}

func printMigrationStatus(cmd *cobra.Command, db *database.DB) error {
	statuses, err := db.MigrationStatus()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(statuses))
	pending := 0
	for _, st := range statuses {
		state := "applied"
		if !st.Exists {
			state = "pending"
			pending++
		}
		rows = append(rows, []string{st.Table, state})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Table", "Status"}, rows, nil, isTerminal(out)))
	fmt.Fprintf(out, "%d table(s), %d pending\n", len(statuses), pending)
	return nil
}
