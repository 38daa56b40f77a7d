// Package cli implements tourctl, a command line front end to the catalog
// database and the package optimizer.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/config"
	"tour-package-service/internal/platform/db"
)

type rootOptions struct {
	configPath string
	driver     string
	dsn        string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd builds the tourctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tourctl",
		Short:         "Inspect the tour catalog and generate optimal tour packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if cmd.Flags().Changed("driver") {
				cfg.Database.Driver = opts.driver
			}
			if cmd.Flags().Changed("dsn") {
				cfg.Database.DSN = opts.dsn
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.toml", "Path to configuration file")
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "Database driver (sqlite or pgx); overrides config")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "Database DSN or SQLite path; overrides config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newRegionsCmd(opts),
		newOptimizeCmd(opts),
		newSeedCmd(opts),
	)

	return root
}

func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// openDB opens the configured database and makes sure the schema exists.
func (o *rootOptions) openDB() (*sql.DB, repositories.Dialect, error) {
	dialect, err := repositories.ParseDialect(o.cfg.Database.Driver)
	if err != nil {
		return nil, 0, err
	}

	conn, err := db.Open(o.cfg.Database.Driver, o.cfg.Database.DSN)
	if err != nil {
		return nil, 0, err
	}

	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, 0, err
	}

	return conn, dialect, nil
}

func (o *rootOptions) logVerbose(cmd *cobra.Command, format string, args ...any) {
	if o.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
