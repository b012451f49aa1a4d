package cmd

import (
	"github.com/spf13/cobra"

	"github.com/donaldgifford/vinted-search/pkg/query"
)

func parseCmd() *cobra.Command {
	var params map[string]string

	cmd := &cobra.Command{
		Use:   "parse <catalog-url>",
		Short: "Show the API query a catalog URL translates to",
		Long:  "Prints the site variant and catalog API query string without contacting Vinted.",
		Example: `  vinted-search parse "https://www.vinted.fr/catalog?search_text=nike&size_ids[]=207&size_ids[]=208"
  vinted-search parse "https://www.vinted.it/catalog?catalog[]=5" -p order=newest_first`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			t := query.Translator{Host: cfg.Vinted.Host}
			pq := t.Translate(args[0], params)

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), pq)
			}
			return printParsedQuery(cmd.OutOrStdout(), &pq)
		},
	}
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "extra API parameter key=value, overriding the URL")

	return cmd
}
