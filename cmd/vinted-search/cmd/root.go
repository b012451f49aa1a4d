// Package cmd implements the CLI commands for vinted-search.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/vinted-search/internal/config"
	"github.com/donaldgifford/vinted-search/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vinted-search",
	Short: "Query the Vinted catalog from catalog page URLs",
	Long: "vinted-search turns Vinted catalog page URLs into calls to the internal catalog API,\n" +
		"handling the anonymous session cookie the API requires. It can run one-off searches\n" +
		"or serve an HTTP API that also polls saved searches for new listings.",
	SilenceUsage: true,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (built-in defaults when empty)")
	pf.String("output", "table", "output format (table, json)")
	pf.Duration("timeout", 30*time.Second, "timeout for Vinted requests")
	pf.String("log-level", "", "override logging.level")
	pf.String("log-format", "", "override logging.format")

	for _, name := range []string{"output", "timeout", "log-level", "log-format"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(brandsCmd())
	rootCmd.AddCommand(cookieCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(remoteCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = os.Getenv("VINTED_SEARCH_CONFIG")
	}

	viper.SetEnvPrefix("VINTED_SEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the config file, or returns defaults when none is set,
// and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if f := viper.GetString("log-format"); f != "" {
		if !logger.ValidFormat(f) {
			return nil, fmt.Errorf("invalid --log-format %q", f)
		}
		cfg.Logging.Format = f
	}
	if viper.IsSet("timeout") {
		cfg.Vinted.RequestTimeout = viper.GetDuration("timeout")
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
