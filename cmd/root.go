package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cutlist/config"
	"cutlist/logging"
)

var (
	configPath string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "cutlist",
	Short: "Compile transcript selections into frame-accurate cut lists",
	Long: `Cutlist maps transcript segments onto an edited timeline (FCPXML or Premiere XML)
and compiles a selection of segments into a gapless cut list, written back out as
FCPXML, EDL, SRT, VTT or an HTML cut sheet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		l, err := logging.New(level)
		if err != nil {
			return err
		}
		logger = l
		if cfg.File != "" {
			logger.Debug("loaded config", zap.String("file", cfg.File))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .cutlist.yaml in ., $CUTLIST_CONFIG_PATH or home)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(selectionCmd)
	rootCmd.AddCommand(serveCmd)
}
