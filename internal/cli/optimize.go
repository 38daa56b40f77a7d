package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tour-package-service/internal/adapters/repositories"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/catalog"
	"tour-package-service/internal/services"
)

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	var (
		region    string
		maxDays   int
		maxBudget float64
		policy    string
		bnb       bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Generate the highest-value tour package for a region",
		Long: `Generate the highest-value tour package for a region.

Omitting --max-days or --max-budget leaves that limit unbounded. When no
non-empty selection fits, the package is printed with found=false and
value -1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := services.PackageRequest{
				RegionID:       region,
				Policy:         opts.cfg.Search.Policy,
				BranchAndBound: opts.cfg.Search.BranchAndBound,
			}
			if cmd.Flags().Changed("max-days") {
				req.MaxDays = &maxDays
			}
			if cmd.Flags().Changed("max-budget") {
				req.MaxBudget = &maxBudget
			}
			if cmd.Flags().Changed("policy") {
				req.Policy = policy
			}
			if cmd.Flags().Changed("bnb") {
				req.BranchAndBound = bnb
			}

			conn, _, err := opts.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			cat, err := catalog.Load(cmd.Context(), repositories.NewSQLCatalogRepository(conn))
			if err != nil {
				return err
			}
			if !cat.HasRegion(region) {
				opts.logVerbose(cmd, "region %q is not in the catalog", region)
			}

			svc := services.NewPackageService(catalog.NewHolder(cat), nil, 0)
			res, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			opts.logVerbose(cmd, "searched %d nodes (%d bound prunes)", res.Stats.Nodes, res.Stats.BoundPrunes)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(dto.NewPackageResponse(res)); err != nil {
				return fmt.Errorf("writing package: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "Region ID to build a package for")
	cmd.Flags().IntVar(&maxDays, "max-days", 0, "Maximum total duration in days")
	cmd.Flags().Float64Var(&maxBudget, "max-budget", 0, "Maximum total cost")
	cmd.Flags().StringVar(&policy, "policy", "", "Value policy: max or sum (default from config)")
	cmd.Flags().BoolVar(&bnb, "bnb", true, "Enable branch-and-bound pruning")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
