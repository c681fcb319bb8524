package main

import (
	"github.com/spf13/cobra"

	"github.com/philipp01105/athome/bootstrap"
	"github.com/philipp01105/athome/clock"
	"github.com/philipp01105/athome/config"
	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
)

// app carries the global flags shared by every subcommand
type app struct {
	configPath string
	level      string
	timezone   string
	color      string
	opts       []bootstrap.Option
}

// newRootCmd builds the command tree. opts are passed to bootstrap.New
// after the command's own streams.
func newRootCmd(opts ...bootstrap.Option) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:          "athome",
		Short:        "lib@home diagnostics and logging",
		Long:         `athome writes leveled, timestamped log lines and renders runtime errors with their backtrace.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file (ATHOME_LOG_* variables override it)")
	root.PersistentFlags().StringVarP(&a.level, "level", "l", "", "threshold (all|debug|info|warning|error|fatal|none)")
	root.PersistentFlags().StringVar(&a.timezone, "timezone", "", "timezone of the line prefix (utc|local)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colorize level names (auto|on|off)")

	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// loadConfig reads the config file and applies the flags on top
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return cfg, err
	}

	if a.level != "" {
		if cfg.Level, err = core.ParseLevel(a.level); err != nil {
			return cfg, diagnostic.Wrapf(err, "invalid --level")
		}
	}
	if a.timezone != "" {
		if cfg.Timezone, err = clock.ParseTimezone(a.timezone); err != nil {
			return cfg, diagnostic.Wrapf(err, "invalid --timezone")
		}
	}
	if a.color != "" {
		cfg.Color = a.color
	}
	return cfg, cfg.Validate()
}

// start builds the logger for cmd, writing to the command's streams
func (a *app) start(cmd *cobra.Command) (*bootstrap.Common, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	opts := append([]bootstrap.Option{
		bootstrap.WithStdout(cmd.OutOrStdout()),
		bootstrap.WithStderr(cmd.ErrOrStderr()),
	}, a.opts...)
	return bootstrap.New(cfg, opts...)
}
