package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/catalog"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog database contents with a JSON seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("file") {
				file = opts.cfg.Seed.Path
			}

			conn, dialect, err := opts.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			opts.logVerbose(cmd, "seeding from %s", file)
			if err := repositories.SeedFromJSON(conn, dialect, file); err != nil {
				return err
			}

			// Reading back through the catalog catches consistency problems now
			// rather than at server start.
			cat, err := catalog.Load(cmd.Context(), repositories.NewSQLCatalogRepository(conn))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d regions, %d tours, %d attractions, %d links (version %s)\n",
				len(cat.Regions()), len(cat.Tours()), len(cat.Attractions()), cat.LinkCount(), cat.Version())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Seed file (default from config)")

	return cmd
}
