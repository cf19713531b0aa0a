package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/internal/config"
	"github.com/jon4hz/artfolio/internal/version"
	"github.com/spf13/cobra"
)

var rootCmdPersistentFlags struct {
	LogFile    string
	ConfigFile string
	LogLevel   string
	BackendURL string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogFile, "log-file", "", "File to write logs to")
	rootCmd.PersistentFlags().StringVarP(&rootCmdPersistentFlags.ConfigFile, "config", "c", "", "Path to config file (default: search for config.yml in current dir, ~/.artfolio, /etc/artfolio)")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - overrides config file setting")
	rootCmd.PersistentFlags().StringVar(&rootCmdPersistentFlags.BackendURL, "backend-url", "", "Portfolio backend URL - overrides config file setting")
}

// cfg is loaded once per invocation before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "artfolio",
	Short: "artfolio manages an artist portfolio from the terminal",
	Long:  `artfolio talks to an artist portfolio backend: browse the gallery, send contact messages and, once logged in as admin, manage artworks, uploads, messages, subscribers and site settings.`,
	Example: `artfolio artworks list --featured --limit 6
  artfolio login -u admin --password-stdin < secret.txt
  artfolio dashboard --log-level debug`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return err
		}
		if rootCmdPersistentFlags.BackendURL != "" {
			c.BackendURL = rootCmdPersistentFlags.BackendURL
		}
		level := c.LogLevel
		if rootCmdPersistentFlags.LogLevel != "" {
			level = rootCmdPersistentFlags.LogLevel
		}
		setLogLevel(level)
		logToFile()
		cfg = c
		return nil
	},
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.Warnf("unknown log level %s, defaulting to info", level)
		log.SetLevel(log.InfoLevel)
	}
}

func logToFile() {
	if rootCmdPersistentFlags.LogFile == "" {
		return
	}
	file, err := os.OpenFile(rootCmdPersistentFlags.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		log.Errorf("failed to open log file: %v", err)
		return
	}

	// logs go to stderr so table output on stdout stays clean
	multiWriter := io.MultiWriter(os.Stderr, file)
	log.SetOutput(multiWriter)
	log.Debug("logging to both console and file", "file", rootCmdPersistentFlags.LogFile)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version.Version),
		fang.WithCommit(version.Commit),
	)
}
