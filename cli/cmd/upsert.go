package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/slicerini/ini"
	"github.com/ardnew/slicerini/log"
)

// Output holds the flags shared by commands that modify the target file.
type Output struct {
	Write bool `help:"Replace the target file instead of printing to stdout." short:"w"`
}

// Upsert adds a value to a key of a section, creating either as needed.
type Upsert struct {
	Output `embed:""`

	Section string `arg:"" help:"Section name, without brackets."`
	Key     string `arg:"" help:"Key name."`
	Value   string `arg:"" help:"Value to add to the key's value list."`
}

// Run executes the upsert command.
func (u *Upsert) Run(ctx context.Context) error {
	return edit(ctx, u.Output, func(m *ini.SectionMap) bool {
		return m.Upsert(u.Section, u.Key, u.Value)
	})
}

// Printer registers a printer model and its nozzle diameters with a vendor.
type Printer struct {
	Output `embed:""`

	Vendor string   `default:"PrusaResearch" help:"Printer vendor." short:"V"`
	Model  string   `arg:""                  help:"Printer model, for example MK4IS."`
	Nozzle []string `arg:""                  help:"Nozzle diameter(s), for example 0.4."`
}

// Run executes the printer command.
func (p *Printer) Run(ctx context.Context) error {
	section, key := p.VendorSection(), p.ModelKey()

	return edit(ctx, p.Output, func(m *ini.SectionMap) bool {
		changed := false

		for _, nozzle := range p.Nozzle {
			if m.Upsert(section, key, nozzle) {
				changed = true
			}
		}

		return changed
	})
}

// VendorSection returns the section name that lists the vendor's installed
// printer models.
func (p *Printer) VendorSection() string { return "vendor:" + p.Vendor }

// ModelKey returns the key naming the printer model within its vendor
// section.
func (p *Printer) ModelKey() string { return "model:" + p.Model }

// edit loads the target file, applies fn to its section map, and emits the
// projected document.
func edit(ctx context.Context, o Output, fn func(*ini.SectionMap) bool) error {
	path := targetFrom(ctx)

	doc, err := LoadDocument(ctx, path, true)
	if err != nil {
		return err
	}

	m := doc.ToMap()
	changed := fn(m)

	log.DebugContext(ctx, "applied edit",
		slog.String("file", path),
		slog.Bool("changed", changed),
	)

	if o.Write && !changed {
		log.InfoContext(ctx, "file unchanged", slog.String("file", path))

		return nil
	}

	return emit(ctx, m.ToDocument(), path, o.Write)
}
