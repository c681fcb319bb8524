package consolehandler_test

import (
	"os"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/formatter"
	"github.com/philipp01105/athome/handler/consolehandler"
)

// Create a console handler writing plain text to stdout.
func ExampleNewConsoleHandler() {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    os.Stdout,
		Formatter: formatter.NewTextFormatter(formatter.Config{}),
	})
	defer h.Close()

	_ = h.Handle(&core.Entry{Timestamp: "[12:00:00]", Level: core.InfoLevel, Message: "hello"})
	// Output:
	// [12:00:00] info: hello
}
