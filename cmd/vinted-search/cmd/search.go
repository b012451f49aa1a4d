package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func searchCmd() *cobra.Command {
	var params map[string]string
	var raw bool

	cmd := &cobra.Command{
		Use:   "search <catalog-url>",
		Short: "Search the Vinted catalog behind a catalog page URL",
		Long: "Translates a catalog page URL into an API query and prints the matching listings.\n" +
			"A URL that is not a Vinted catalog URL prints no results.",
		Example: `  vinted-search search "https://www.vinted.fr/catalog?search_text=nike&catalog[]=1206"
  vinted-search search "https://www.vinted.de/catalog?search_text=levis" --param per_page=96 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], params, raw)
		},
	}
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "extra API parameter key=value, overriding the URL")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the API payload unchanged")

	return cmd
}

func runSearch(cmd *cobra.Command, sourceURL string, params map[string]string, raw bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, _ := newVintedClient(cfg, newLogger(cfg))
	defer client.Wait()

	ctx, cancel := requestContext(cmd.Context(), cfg)
	defer cancel()

	data, err := client.Search(ctx, sourceURL, params)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if raw {
		return outputRaw(out, data)
	}

	resp, err := vinted.DecodeCatalog(data)
	if err != nil {
		return err
	}
	if jsonOutput() {
		return outputJSON(out, resp.Items)
	}
	if len(resp.Items) == 0 {
		_, err := fmt.Fprintln(out, "No listings found.")
		return err
	}
	return printItemsTable(out, resp.Items)
}
