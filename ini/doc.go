// Package ini reads and writes PrusaSlicer-style INI configuration text
// without disturbing the parts of a file it was not asked to change.
//
// Text is parsed into a [Document], an ordered list of [Entry] values, one
// per source line. A Document formats back to the exact bytes it was parsed
// from.
//
// Edits happen on a [SectionMap], the section, key and value-list view of a
// Document obtained with [ToMap]. [Upsert] and the ordinary mapping methods
// mutate it, and [ToDocument] projects it back onto the original lines:
//
//	doc, err := ini.Parse(text)
//	if err != nil {
//		return err
//	}
//
//	m := doc.ToMap()
//	m.Upsert("vendor:PrusaResearch", "model:MK4IS", "0.4")
//
//	fmt.Print(m.ToDocument())
//
// # Line Grammar
//
// Each line is classified after trimming surrounding whitespace:
//
//   - "[name]" is a section header
//   - a line beginning with ';' or '#' is a comment
//   - an empty line is blank
//   - "key = value" is a key-value pair split on the first '='
//
// Anything else is an error. Names and keys may be empty: "[]" opens the
// unnamed section "" and "= v" declares the empty key. Key-value lines
// ahead of the first header also belong to "" unless [WithStrictSections]
// is given.
//
// # Value Lists
//
// A value is a list of items separated by commas. Items are trimmed and
// empty items dropped, so "0.4, 0.6" holds two items and "" holds none.
// Lists are written back joined by [ValueSeparator]. Values given to
// [Upsert] are split the same way, so a comma always separates items.
//
// The package does no I/O other than reading the [io.Reader] handed to
// [ParseReader], and it never logs.
package ini
