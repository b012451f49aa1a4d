package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/vinted-search/internal/api/client"
	"github.com/donaldgifford/vinted-search/internal/api/handlers"
)

func remoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running vinted-search server",
		Long: "Commands that call the HTTP API of a vinted-search server started with\n" +
			"'vinted-search serve', for example to inspect or poll its watches.",
	}
	cmd.PersistentFlags().String("server", "http://localhost:8080", "API server URL")
	cobra.CheckErr(viper.BindPFlag("server", cmd.PersistentFlags().Lookup("server")))

	cmd.AddCommand(
		remoteWatchesCmd(),
		remotePollCmd(),
		remoteQuotaCmd(),
		remoteCookieCmd(),
		remoteClearCookiesCmd(),
	)
	return cmd
}

func newAPIClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func remoteWatchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watches",
		Short: "List the server's watches",
		Example: `  vinted-search remote watches
  vinted-search remote watches --server http://tracker:8080 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watches, err := newAPIClient().ListWatches(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, watches)
			}
			if len(watches) == 0 {
				_, err = fmt.Fprintln(out, "No watches configured.")
				return err
			}
			return printWatchesTable(out, watches)
		},
	}
}

func remotePollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Poll every watch now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := newAPIClient().PollWatches(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), status)
			return err
		},
	}
}

func remoteQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the server's daily Vinted API budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newAPIClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, q)
			}
			return printQuota(out, q)
		},
	}
}

func remoteCookieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cookie <variant>",
		Short: "Make the server acquire a fresh session cookie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cookie, err := newAPIClient().AcquireCookie(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cookie)
			return err
		},
	}
}

func remoteClearCookiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cookies",
		Short: "Drop the session cookies stored by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newAPIClient().ClearCookies(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cookies cleared")
			return err
		},
	}
}

func printWatchesTable(w io.Writer, watches []handlers.WatchSummary) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tSEEN\tURL\n")
	for i := range watches {
		tw.writef("%s\t%d\t%s\n", watches[i].Name, watches[i].Seen, watches[i].URL)
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	if q.Remaining < 0 {
		tw.writef("Daily limit:\tnone\n")
		return tw.finish()
	}
	tw.writef("Daily limit:\t%d\n", q.DailyLimit)
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Remaining:\t%d\n", q.Remaining)
	tw.writef("Resets at:\t%s\n", q.ResetAt.Local().Format("2006-01-02 15:04:05"))
	return tw.finish()
}
