package main

import (
	"fmt"
	"os"

	"github.com/25smoking/aggsynth/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger *zap.Logger
	log    *zap.SugaredLogger
	cfg    *config.Config

	// Command line flags
	configPath string
	debugMode  bool
	logLevel   string
)

func init() {
	logger = zap.NewNop()
	log = logger.Sugar()
}

var rootCmd = &cobra.Command{
	Use:   "aggsynth",
	Short: "aggsynth - synthetic aggregate datasets from attributed graphs",
	Long: `aggsynth samples attribute-consistent random walks through a graph whose nodes
encode attribute=value pairs and whose nodes and edges carry click/sale counters.
Each walk becomes one CSV row: the attribute values it visited and the mean
normalized click-through and sale rates of every node and edge it touched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "run config file (default ./config/aggsynth.yaml, then built-in)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "development logging at debug level")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	addGenerateFlags(rootCmd)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset (same as running aggsynth with no subcommand)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)

	rootCmd.AddCommand(newGraphCmd())
}

func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	logger, err = newLogger(level, debugMode)
	if err != nil {
		return err
	}
	log = logger.Sugar()
	return nil
}

func newLogger(level string, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg = zap.NewDevelopmentConfig()
		level = "debug"
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zcfg.Level = lvl
	}
	return zcfg.Build()
}

func main() {
	// Ensure proper cleanup on exit
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic: %v", r)
			log.Sync()
			os.Exit(1)
		}
		log.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		log.Error(err)
		log.Sync()
		os.Exit(1)
	}
}
