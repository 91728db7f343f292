// Package cmd implements the slicerini subcommands.
//
// Commands read the PrusaSlicer.ini file named by [WithTarget] (or standard
// input for "-"), edit it through package ini, and print the result or,
// with --write, replace the file atomically.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the settings file written by init.
	ConfigIdentifier = "config"

	// SettingsSection is the section of the settings file holding flag
	// values.
	SettingsSection = "slicerini"
)
