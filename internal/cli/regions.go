package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/catalog"
)

func newRegionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions with their tour counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, _, err := opts.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			cat, err := catalog.Load(cmd.Context(), repositories.NewSQLCatalogRepository(conn))
			if err != nil {
				return err
			}
			opts.logVerbose(cmd, "catalog version %s", cat.Version())

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTOURS")
			for _, r := range cat.Regions() {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", r.ID, r.Name, len(cat.ToursInRegion(r.ID)))
			}
			return tw.Flush()
		},
	}
}
