package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slicerini/log"
)

// logFormat and logLevel configure the default logger as kong decodes them,
// so messages logged while the command line is still being parsed already
// use the requested format and level.
type (
	logFormat string
	logLevel  string
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logConfig holds the "--log-*" flags shared by every subcommand. Logs go
// to stderr so that stdout carries only document output.
type logConfig struct {
	Level      logLevel  `default:"${logLevel}"      enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"${logFormat}"     enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"${logTimeLayout}"                         help:"Set timestamp format (Go layout, layout name, or none)."`
	Caller     bool      `default:"false"                                    help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                     help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevel":      log.DefaultLevel.String(),
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormat":     log.DefaultFormat.String(),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logTimeLayout": "RFC3339",
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// options returns the logger options selected by f.
func (f *logConfig) options() []log.Option {
	return []log.Option{
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(f.options()...)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies the logger flags found in args before kong parses them, so
// the switches take effect no matter where they appear. Value flags accept
// "--log-level=debug" or "--log-level debug"; switches accept an optional
// "=bool" and are inverted by their "--no-log-" form. Scanning stops at
// "--", and anything it does not recognize is left for kong to report.
func (f *logConfig) scan(args []string) {
	var opts []log.Option

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		flag, negated := strings.CutPrefix(arg, "--no-log-")
		if !negated {
			var ok bool
			if flag, ok = strings.CutPrefix(arg, "--log-"); !ok {
				continue
			}
		}

		name, value, assigned := strings.Cut(flag, "=")

		switch name {
		case "level", "format", "time-layout":
			if negated {
				continue
			}

			if !assigned {
				if i+1 == len(args) || strings.HasPrefix(args[i+1], "-") {
					continue
				}

				i++
				value = args[i]
			}

			opts = append(opts, f.setValue(name, value))

		case "caller", "pretty":
			on := true

			if assigned {
				b, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				on = b
			}

			opts = append(opts, f.setSwitch(name, on != negated))
		}
	}

	if len(opts) > 0 {
		log.Config(opts...)
	}
}

func (f *logConfig) setValue(name, value string) log.Option {
	switch name {
	case "level":
		f.Level = logLevel(value)

		return log.WithLevel(log.ParseLevel(value))

	case "format":
		f.Format = logFormat(value)

		return log.WithFormat(log.ParseFormat(value))

	default:
		f.TimeLayout = value

		return log.WithTimeLayout(value)
	}
}

func (f *logConfig) setSwitch(name string, on bool) log.Option {
	if name == "caller" {
		f.Caller = on

		return log.WithCaller(on)
	}

	f.Pretty = on

	return log.WithPretty(on)
}
