package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/diagnostic"
	"github.com/philipp01105/athome/logger"
)

func newLogCmd(a *app) *cobra.Command {
	var (
		at     string
		code   int
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "log [flags] message...",
		Short: "Write one log line",
		Example: `  athome log --at warning disk almost full
  athome log --at info --field unit=wu-0042 unit finished
  athome log --at fatal --code 2 giving up`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			level, err := core.ParseLevel(at)
			if err != nil {
				return diagnostic.Wrapf(err, "invalid --at")
			}
			if !level.IsMessageLevel() {
				return diagnostic.Errorf("--at must name a message level, not '%s'", at)
			}

			fs := make([]core.Field, 0, len(fields))
			for _, kv := range fields {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return diagnostic.Errorf("invalid --field '%s' (expected key=value)", kv)
				}
				fs = append(fs, logger.String(k, v))
			}

			common, err := a.start(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, common.Close())
			}()

			msg := strings.Join(args, " ")
			if level == core.FatalLevel {
				common.Log.Fatal(code, msg, fs...)
				return nil
			}
			common.Log.Log(level, msg, fs...)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "info", "level of the line (debug|info|warning|error|fatal)")
	cmd.Flags().IntVar(&code, "code", 1, "exit code after a fatal line")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "key=value field, repeatable")
	return cmd
}
