package ini

import (
	"log/slog"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects sections of a [SectionMap] with a boolean expr-lang
// expression.
//
// The expression sees three variables describing one section at a time:
//
//	section  string               the section name
//	keys     []string             its keys, in order
//	values   map[string][]string  its values by key (nil for no value)
//
// For example:
//
//	section startsWith "vendor:" && "model:MK4IS" in values
type Filter struct {
	source  string
	program *vm.Program
}

// filterEnv returns the expression environment for section s.
func filterEnv(name string, s *Section) map[string]any {
	keys := slices.Collect(s.Keys())
	values := make(map[string][]string, len(keys))

	for k, v := range s.All() {
		values[k] = v
	}

	return map[string]any{
		"section": name,
		"keys":    keys,
		"values":  values,
	}
}

// Compile compiles source into a Filter.
func Compile(source string) (*Filter, error) {
	program, err := expr.Compile(
		source,
		expr.Env(filterEnv("", newSection(""))),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return &Filter{source: source, program: program}, nil
}

// String returns the expression source of f.
func (f *Filter) String() string { return f.source }

// Match reports whether the named section satisfies f.
func (f *Filter) Match(name string, s *Section) (bool, error) {
	out, err := expr.Run(f.program, filterEnv(name, s))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).
			With(slog.String("source", f.source), slog.String("section", name))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// Apply returns a new SectionMap, with no origin document, holding copies
// of the sections of m that satisfy f.
func (f *Filter) Apply(m *SectionMap) (*SectionMap, error) {
	out := NewSectionMap()

	for n, s := range m.All() {
		ok, err := f.Match(n, s)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		dst := out.Ensure(n)
		for k, v := range s.All() {
			dst.Set(k, v)
		}
	}

	return out, nil
}
