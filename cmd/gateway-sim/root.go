package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gateway-sim/internal/app"
	"gateway-sim/internal/config"
	"gateway-sim/internal/gateway"
	"gateway-sim/internal/logger"
	"gateway-sim/internal/redirect"
	"gateway-sim/internal/service"
	"gateway-sim/internal/store"
)

const version = "1.0.0"

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
	)

	rootCmd := &cobra.Command{
		Use:   "gateway-sim [script]",
		Short: "Deterministic in-process payment gateway simulator",
		Long: `Runs sale, settlement and lookup commands against a simulated payment gateway.
Commands are read from the script file, or from stdin when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}

			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("cannot open file: %w", err)
				}
				defer file.Close()
				input = file
			}

			log := logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			gw := gateway.New(store.NewMemoryStore(),
				gateway.WithLogger(log),
				gateway.WithTransactionURL(cfg.TransactionURL),
			)
			processor := service.NewProcessor(gw, redirect.NewRegistry())
			return app.NewRunner(processor, input, cmd.OutOrStdout()).Run()
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "json", "log format: json or text")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Display the version of gateway-sim",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gateway-sim version %s\n", version)
		},
	})

	return rootCmd
}
