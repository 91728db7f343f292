// Package pkg holds the project metadata shared by the command-line
// interface and its help output.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of slicerini embedded at build time.
// It is printed by the CLI for the --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command identifier. It appears in help text and
	// names the configuration and cache directories.
	Name = "slicerini"
	// Description is a short, human-readable summary used in help output.
	Description = "Format-preserving PrusaSlicer configuration editor"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
