package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/walteh/elsense/cmd/elsense/locate"
	"github.com/walteh/elsense/cmd/elsense/serve"
	"github.com/walteh/elsense/cmd/elsense/tokenize"
	"github.com/walteh/elsense/pkg/config"
	logging "github.com/walteh/elsense/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	fs := afero.NewOsFs()

	var (
		configPath string
		logLevel   string
	)

	rootCmd := &cobra.Command{
		Use:   "elsense",
		Short: "Tokenize and navigate expression language embedded in markup",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (default "+config.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(fs, configPath)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.LogLevel = logLevel
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("invalid --log-level: %w", err)
			}
		}

		ctx := logging.WithLogger(cmd.Context(), logging.LoggerOptions{
			Writer:    os.Stderr,
			Level:     cfg.Level(),
			Color:     *cfg.Color,
			Component: cmd.Name(),
		})

		cmd.SetContext(config.WithContext(ctx, cfg))
		return nil
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(tokenize.NewTokenizeCommand(fs))
	rootCmd.AddCommand(locate.NewLocateCommand(fs))
	rootCmd.AddCommand(serve.NewServeCommand())

	rootCmd.SilenceUsage = true

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
