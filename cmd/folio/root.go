package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/var1d/folio/internal/cli"
	"github.com/var1d/folio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio is the interaction core of a portfolio site",
	Long: `folio serves the display-mode toggle, the contact form workflow and its
notifications over HTTP, SSE, WebSocket and MCP, or drives a contact session
from the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./folio.yaml when present)")
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "Dotenv files loaded before the environment is read")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every lifecycle event at debug level")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for the submission guard (empty: in-process)")
}

// flagBinding maps a cobra flag onto a configuration key.
type flagBinding struct {
	key  string
	flag string
}

// loadConfig reads the configuration and lets explicitly set flags win over
// files and the environment.
func loadConfig(cmd *cobra.Command, bindings ...flagBinding) (config.Config, error) {
	bindings = append(bindings,
		flagBinding{key: "log.level", flag: "log-level"},
		flagBinding{key: "redis.addr", flag: "redis"},
	)

	opts := []config.Option{
		config.WithBinder(func(v *viper.Viper) error {
			for _, b := range bindings {
				f := cmd.Flags().Lookup(b.flag)
				if f == nil || !f.Changed {
					continue
				}
				if err := v.BindPFlag(b.key, f); err != nil {
					return fmt.Errorf("bind --%s: %w", b.flag, err)
				}
			}
			return nil
		}),
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if envFiles, _ := cmd.Flags().GetStringSlice("env-file"); len(envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(envFiles...))
	}

	return config.Load(opts...)
}

// setup loads the configuration and the logger shared by every command.
func setup(cmd *cobra.Command, bindings ...flagBinding) (config.Config, *slog.Logger, bool, error) {
	cfg, err := loadConfig(cmd, bindings...)
	if err != nil {
		return config.Config{}, nil, false, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return cfg, cli.NewLogger(cfg.Log, debug), debug, nil
}
