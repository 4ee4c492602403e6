package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdfisher/osrs-tools/internal/app"
	"github.com/cdfisher/osrs-tools/internal/config"
	"github.com/cdfisher/osrs-tools/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	appHandle *app.App
)

var rootCmd = &cobra.Command{
	Use:           "osrstools",
	Short:         "Query Old School RuneScape highscores and Grand Exchange prices",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if appHandle != nil {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		logger := logging.NewLogger(cfg.Logging)
		appHandle = app.NewApp(cfg, logger)
		appHandle.Out = cmd.OutOrStdout()
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level defined in config")

	rootCmd.AddCommand(highscoresCmd)
	rootCmd.AddCommand(ironmanCmd)
	rootCmd.AddCommand(combatCmd)
	rootCmd.AddCommand(ehbCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(marginCheckCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func getApp() *app.App {
	if appHandle == nil {
		panic("application not initialized; PersistentPreRunE not executed")
	}
	return appHandle
}
