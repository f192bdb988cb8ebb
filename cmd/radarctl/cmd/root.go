// Package cmd provides the radarctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"creative-radar/cmd/internal/app"
	"creative-radar/config"
)

type globalOptions struct {
	dbPath   string
	logLevel string
	format   string
}

// NewRootCmd creates the root command for radarctl.
func NewRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "radarctl",
		Short: "Run creative reference searches from the terminal",
		Long: `radarctl runs the creative-radar search pipeline locally against the
configured store and providers.

Examples:
  radarctl search "luxury hotel cinematic reels" --platforms youtube,vimeo
  radarctl history --limit 5
  radarctl show <search-id> --format json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(config.GetBasePath()); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg := config.GetConfig()
			// LOG_LEVEL 이 있으면 플래그를 명시했을 때만 덮어쓴다.
			if cmd.Flags().Changed("log-level") || os.Getenv("LOG_LEVEL") == "" {
				cfg.Logging.Level = opts.logLevel
			}
			config.InitLogger(cfg.Logging)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides storage.sqlite_path)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	cmd.AddCommand(newSearchCmd(&opts))
	cmd.AddCommand(newHistoryCmd(&opts))
	cmd.AddCommand(newShowCmd(&opts))
	cmd.AddCommand(newDeleteCmd(&opts))
	cmd.AddCommand(newTemplatesCmd(&opts))
	cmd.AddCommand(newWatchCmd())

	return cmd
}

// openApp 은 전역 플래그를 반영해 저장소와 파이프라인을 연다.
func openApp(ctx context.Context, opts *globalOptions) (*app.App, error) {
	cfg := config.GetConfig()
	if opts.dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.SQLitePath = opts.dbPath
	}
	return app.New(ctx, cfg, config.GetSecrets(), "radarctl")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want text or json)", format)
	}
}
