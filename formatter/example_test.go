package formatter_test

import (
	"fmt"
	"time"

	"github.com/philipp01105/athome/core"
	"github.com/philipp01105/athome/formatter"
)

func ExampleNewTextFormatter() {
	f := formatter.NewTextFormatter(formatter.Config{})

	entry := &core.Entry{
		Timestamp: "[08:30:00]",
		Level:     core.WarnLevel,
		Message:   "Hello World!",
		Fields: []core.Field{
			{Key: "unit", Type: core.StringType, Str: "wu-0042"},
		},
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// [08:30:00] warning: Hello World! unit=wu-0042
}

// Without a pre-rendered timestamp the formatter uses its own layout.
func ExampleNewJSONFormatter() {
	f := formatter.NewJSONFormatter(formatter.Config{})

	entry := &core.Entry{
		Time:    time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC),
		Level:   core.InfoLevel,
		Message: "unit finished",
		Fields: []core.Field{
			{Key: "attempt", Int64: 3, Type: core.Int64Type},
		},
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// {"time":"2026-10-19T08:30:00Z","level":"info","message":"unit finished","attempt":3}
}

func ExampleJSONFormatter_backtrace() {
	f := formatter.NewJSONFormatter(formatter.Config{})

	entry := &core.Entry{
		Timestamp: "[08:30:00]",
		Level:     core.ErrorLevel,
		Message:   "*(RUNTIME)* open(): no such unit\n\nbacktrace:\n  main(main.main+0x1f) [0x401000]\n",
	}

	out, _ := f.Format(entry)
	fmt.Print(string(out))
	// Output:
	// {"time":"[08:30:00]","level":"ERROR","message":"*(RUNTIME)* open(): no such unit","backtrace":["main(main.main+0x1f) [0x401000]"]}
}
