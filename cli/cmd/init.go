package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
	"github.com/ardnew/slicerini/profile"
)

// Init generates the settings file from current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"F"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	doc, n := i.buildDocument(ktx)

	if err := WriteFileAtomic(confPath, []byte(doc.String())); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.InfoContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("settings", n),
	)

	return nil
}

// buildDocument constructs the settings document from current flag values
// and returns it with the number of settings written.
func (i *Init) buildDocument(ktx *kong.Context) (*ini.Document, int) {
	m := ini.NewSectionMap()
	sec := m.Ensure(SettingsSection)

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val := flagValue(ktx, flag); val != nil {
			sec.Set(flag.Name, val)
		}
	}

	doc := m.ToDocument()

	return ini.NewDocument(append(
		[]ini.Entry{ini.NewComment("; " + ktx.Model.Name + " settings")},
		doc.Entries...,
	)...), sec.Len()
}

// flagValue returns the value list for a CLI flag, or nil if unset.
func flagValue(ktx *kong.Context, flag *kong.Flag) ini.Values {
	val := ktx.FlagValue(flag)
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case bool:
		return ini.Values{strconv.FormatBool(v)}

	case string:
		if v == "" {
			return nil
		}

		return ini.Values{v}

	case []string:
		if len(v) == 0 {
			return nil
		}

		return slices.Clone(ini.Values(v))

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return ini.Values{s}
	}
}
