package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"msgboard/internal/database"
)

// NewMigrateCommand creates the migrate command and its subcommands.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, func(db *database.DB) error {
				return db.Migrate(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, func(db *database.DB) error {
				return db.Rollback(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), opts, func(db *database.DB) error {
				statuses, err := db.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}
				return printStatus(cmd.OutOrStdout(), statuses)
			})
		},
	})

	return cmd
}

func withDatabase(ctx context.Context, opts *RootOptions, fn func(db *database.DB) error) error {
	db, err := database.Open(ctx, loadConfig(opts))
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func printStatus(out io.Writer, statuses []database.MigrationStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, s := range statuses {
		state, appliedAt := "pending", "-"
		if s.Applied {
			state = "applied"
			appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Version, state, appliedAt, s.Path)
	}
	return tw.Flush()
}
