package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/vinted-search/internal/vinted"
)

func cookieCmd() *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "cookie [variant]",
		Short: "Acquire a session cookie from the Vinted site",
		Long: "Fetches the site root of a variant and prints the session cookie it sets.\n" +
			"With --export the cookie is printed as a shell assignment for the environment\n" +
			"variable the client reads as a fallback.",
		Example: `  vinted-search cookie de
  eval "$(vinted-search cookie fr --export)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			variant := cfg.Vinted.DefaultVariant
			if len(args) == 1 {
				variant = args[0]
			}

			client, _ := newVintedClient(cfg, newLogger(cfg))

			ctx, cancel := requestContext(cmd.Context(), cfg)
			defer cancel()

			cookie, err := client.AcquireCookie(ctx, variant)
			if err != nil {
				return fmt.Errorf("acquiring cookie: %w", err)
			}

			out := cmd.OutOrStdout()
			switch {
			case export:
				_, err = fmt.Fprintf(out, "export %s=%q\n",
					vinted.CookieEnvName(cfg.Vinted.CookieEnvPrefix, variant), cookie)
			case jsonOutput():
				err = outputJSON(out, map[string]string{"variant": variant, "cookie": cookie})
			default:
				_, err = fmt.Fprintln(out, cookie)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&export, "export", false, "print a shell export statement")

	return cmd
}
