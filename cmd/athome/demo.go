package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/athome/bootstrap"
	"github.com/philipp01105/athome/file"
)

const hello = "Hello World!"

func newDemoCmd(a *app) *cobra.Command {
	var fatal int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Raise a diagnostic error and log one line per level",
		Long: `demo opens a file on a missing stream, logs the resulting error with
its backtrace and then greets the world once per level.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			common, err := a.start(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, common.Close())
			}()

			runDemo(common)
			if cmd.Flags().Changed("fatal") {
				common.Log.Fatal(fatal, hello)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fatal, "fatal", 3, "finish with a FATAL line and exit with this code")
	return cmd
}

func runDemo(c *bootstrap.Common) {
	if _, err := file.NewStream(nil, "demo"); err != nil {
		c.Log.ErrorErr(err)
	}

	c.Log.Debug(hello)
	c.Log.Info(hello)
	c.Log.Warn(hello)
	c.Log.Errorf("Hello %s, how are you (%d)?", "World", -999)
}
