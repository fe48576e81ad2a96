package cmd

import (
	"log/slog"
	"os"

	"github.com/joseluizmed/tempodeatestadonovo2/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "atestado",
	Short: "Medical leave certificate timeline calculator",
	Long: `Atestado analyses sequences of medical leave certificates: it classifies each
certificate against the previous one, partitions the covered period into gaps,
covered stretches and overlaps, and finds the longest continuous leave.

It also serves the calculator website and manages its article content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New()
		if err := v.BindPFlag("log.level", cmd.Flags().Lookup("log-level")); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		config.SetupLogger(cfg.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
