package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/augmenter"
	"github.com/aretw0/augmenter/internal/demo"
	"github.com/aretw0/augmenter/internal/logging"
	"github.com/aretw0/augmenter/pkg/adapters/memory"
	"github.com/aretw0/augmenter/pkg/adapters/redis"
	"github.com/aretw0/augmenter/pkg/config"
	"github.com/aretw0/augmenter/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "augmenter",
	Short: "Augmenter shapes Go objects into API responses",
	Long: `Augmenter declares per-type output shapes once and applies them to whole object graphs.
This binary runs the bundled demo catalog and inspects its configuration.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringSlice("config", nil, "Extra type configuration files (YAML) applied over the demo declarations")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for state (in-memory when empty)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}

// env is what every command needs: a logger, a state source and a built configuration.
type env struct {
	logger *slog.Logger
	source ports.StateSource
	cfg    *config.Configuration
	close  func()
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	lvl, _ := cmd.Flags().GetString("log-level")
	fmtName, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(lvl)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(fmtName)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

func newEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{logger: logger, close: func() {}}
	addr, _ := cmd.Flags().GetString("redis")
	if addr != "" {
		loader := redis.New(addr)
		if err := loader.Ping(ctx); err != nil {
			_ = loader.Close()
			return nil, fmt.Errorf("redis unavailable at %s: %w", addr, err)
		}
		logger.Info("Using redis state", "addr", addr)
		e.source = loader
		e.close = func() { _ = loader.Close() }
	} else {
		store := memory.NewStore()
		if err := demo.Seed(ctx, store); err != nil {
			return nil, err
		}
		e.source = store
	}

	files, _ := cmd.Flags().GetStringSlice("config")
	e.cfg, err = demo.NewConfiguration(e.source, files...)
	if err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}

func (e *env) engine(opts ...augmenter.Option) (*augmenter.Engine, error) {
	return augmenter.New(e.cfg, append([]augmenter.Option{augmenter.WithLogger(e.logger)}, opts...)...)
}
