// File: cmd/scan.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Amrlmlna/dyad-scan/api/schemas"
	"github.com/Amrlmlna/dyad-scan/internal/config"
	"github.com/Amrlmlna/dyad-scan/internal/observability"
	"github.com/Amrlmlna/dyad-scan/internal/orchestrator"
	"github.com/Amrlmlna/dyad-scan/internal/walker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newScanCmd creates and configures the `scan` command.
func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scans a project tree and emits its structure snapshot as JSON",
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their Viper keys so command-line flags override
			// values from the config file and environment.
			if err := viper.BindPFlag("scan.worker_concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			if err := viper.BindPFlag("scan.max_file_size", cmd.Flags().Lookup("max-file-size")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := observability.GetLogger()

			cfg, err := config.NewConfigFromViper(viper.GetViper())
			if err != nil {
				return err
			}
			cfg.Scan.Output, _ = cmd.Flags().GetString("output")
			cfg.Scan.Pretty, _ = cmd.Flags().GetBool("pretty")

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			snapshot, err := orchestrator.New(cfg, logger).Scan(ctx, root)
			if err != nil {
				var rootErr *walker.RootError
				if errors.As(err, &rootErr) {
					return fmt.Errorf("cannot scan: %w", rootErr)
				}
				return err
			}

			if err := writeSnapshot(snapshot, cfg.Scan.Output, cfg.Scan.Pretty); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
			if cfg.Scan.Output != "" {
				logger.Info("Snapshot written",
					zap.String("path", cfg.Scan.Output),
					zap.Int("files", len(snapshot.Files)))
			}
			return nil
		},
	}

	scanCmd.Flags().StringP("output", "o", "", "Output file path for the snapshot. If unset, the snapshot goes to stdout.")
	scanCmd.Flags().Bool("pretty", false, "Indent the JSON output.")
	scanCmd.Flags().IntP("concurrency", "j", 0, "Number of concurrent analysis workers. (Overrides config/env)")
	scanCmd.Flags().Int64("max-file-size", 0, "Largest file in bytes to analyze. (Overrides config/env)")
	return scanCmd
}

// writeSnapshot serializes the snapshot to the output path or stdout.
func writeSnapshot(snapshot *schemas.Snapshot, output string, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(snapshot, "", "  ")
	} else {
		data, err = json.Marshal(snapshot)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

func init() {
	rootCmd.AddCommand(newScanCmd())
}
