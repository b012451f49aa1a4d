package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func brandsCmd() *cobra.Command {
	var variant string

	cmd := &cobra.Command{
		Use:     "brands <keyword>",
		Short:   "Look up brand IDs for brand_ids[] filters",
		Example: `  vinted-search brands "stone island" --variant it`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, _ := newVintedClient(cfg, newLogger(cfg))
			defer client.Wait()

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			data, err := client.Brands(ctx, args[0], variant)
			if err != nil {
				return fmt.Errorf("brands: %w", err)
			}

			resp, err := vinted.DecodeBrands(data)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp.Brands)
			}
			return printBrandsTable(cmd.OutOrStdout(), resp.Brands)
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "site variant (default from config)")

	return cmd
}
