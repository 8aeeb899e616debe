package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/locallibrary/internal/config"
	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/catalog"
	"github.com/mrlokans/locallibrary/internal/seed"
)

type seedOptions struct {
	dbPath string
	reset  bool
}

func newSeedCommand() *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample authors, genres, books and copies",
		Long: `Seed writes a small sample catalog. By default it uses the database
configured through the environment; --db points it at a SQLite file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, config.NewConfig().Database, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database file to seed (overrides DATABASE_* settings)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Delete the SQLite database file before seeding")
	return cmd
}

func runSeed(cmd *cobra.Command, dbCfg config.Database, opts *seedOptions) error {
	if opts.dbPath != "" {
		dbCfg.Driver = config.DatabaseDriverSQLite
		dbCfg.Path = opts.dbPath
	}

	if opts.reset {
		if dbCfg.Driver == config.DatabaseDriverPostgres {
			return fmt.Errorf("--reset only applies to SQLite databases")
		}
		if err := os.Remove(dbCfg.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := database.Open(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := seed.Populate(cmd.Context(), catalog.NewRepository(db.DB))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s\n", summary)
	return nil
}
