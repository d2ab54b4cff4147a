// FILE: dobrawek/drlogger/cmd/drlogctl/main.go
// Command drlogctl inspects and maintains a daily log directory: it runs
// retention, shows the file the next write would target, appends records and
// watches a configuration file.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dobrawek/drlogger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the global flags shared by every subcommand
type options struct {
	configPath string
	overrides  []string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "drlogctl",
		Short:         "Maintain daily rotated log directories",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file with a [drlogger] table")
	rootCmd.PersistentFlags().StringArrayVar(&opts.overrides, "set", nil, "override a configuration value (key=value), may be repeated")

	rootCmd.AddCommand(
		cleanupCommand(opts),
		resolveCommand(opts),
		writeCommand(opts),
		watchCommand(opts),
	)
	return rootCmd
}

// loadConfig reads the configuration file, if any, and applies --set overrides
func (o *options) loadConfig() (*drlogger.Config, error) {
	cfg := drlogger.DefaultConfig()
	if o.configPath != "" {
		loaded, err := drlogger.NewConfigFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyOverrides(o.overrides...); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// listener builds a daily file listener whose diagnostics go to the command's
// error stream. The log directory is created when missing.
func (o *options) listener(cmd *cobra.Command) (*drlogger.DailyFileListener, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return listenerFor(cmd, cfg)
}

func listenerFor(cmd *cobra.Command, cfg *drlogger.Config) (*drlogger.DailyFileListener, error) {
	l := drlogger.NewDailyFileListener(drlogger.WithDiagnostics(cmd.ErrOrStderr()))
	if err := l.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return l, nil
}

func cleanupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Run one retention pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// Nothing to retain, and a retention pass must not create the directory
			if _, err := os.Stat(cfg.Directory); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "deleted=0 failed=0")
				return nil
			}

			l, err := listenerFor(cmd, cfg)
			if err != nil {
				return err
			}
			l.Cleanup()

			stats := l.Stats().Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "deleted=%d failed=%d\n", stats.Deletions, stats.DeleteFailures)
			if stats.DeleteFailures > 0 {
				return fmt.Errorf("failed to delete %d log files", stats.DeleteFailures)
			}
			return nil
		},
	}
}

func resolveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the file the next write would target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentFile(time.Now()))
			return nil
		},
	}
}

func writeCommand(opts *options) *cobra.Command {
	var levelName, tag string

	cmd := &cobra.Command{
		Use:   "write MESSAGE...",
		Short: "Append one record to the current log file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := drlogger.ParseLevel(levelName)
			if err != nil {
				return err
			}
			l, err := opts.listener(cmd)
			if err != nil {
				return err
			}

			logger := drlogger.New(drlogger.WithListeners(l))
			logger.Log(level, tag, strings.Join(args, " "), nil)

			if failures := l.Stats().WriteFailures.Load(); failures > 0 {
				return fmt.Errorf("record could not be written")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&levelName, "level", "l", "info", "record level (trace, debug, info, warn, error, fatal)")
	cmd.Flags().StringVarP(&tag, "tag", "t", "drlogctl", "record tag")
	return cmd
}

func watchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run scheduled retention and reload the configuration file on change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath == "" {
				return fmt.Errorf("watch requires --config")
			}
			l, err := opts.listener(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := drlogger.New(drlogger.WithListeners(l))
			if err := logger.Start(ctx); err != nil {
				return err
			}
			defer logger.Stop()

			watcher, err := drlogger.WatchConfig(l, opts.configPath)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s, writing to %s\n", opts.configPath, l.Path())
			<-ctx.Done()
			return nil
		},
	}
}
