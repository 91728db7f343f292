package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/slicerini/pkg"
)

// baseConfig is the base name of the settings file.
const baseConfig = "config"

// prusaBase is the base name of the file slicerini edits by default.
const prusaBase = "PrusaSlicer.ini"

// searchPathEnv names the environment variable listing extra PrusaSlicer
// data directories, searched before the platform defaults.
const searchPathEnv = "SLICERINI_PATH"

// DefaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the base prefix string used to construct the path to the
// configuration and cache directories.
//
// By default, basePrefix is the base name of the executable file unless it
// matches one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with cmd
//   - "^\.+" (dot-prefixed names): remove the dot prefix
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): pkg.Name, // dlv default output
			regexp.MustCompile(`^\.+`):             "",       // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = pkg.Name
		}

		return id
	},
)

// userDir returns the directory reported by primary, falling back to the
// hidden directory fallback under the user's home, then the working directory.
func userDir(primary func() (string, error), fallback string) string {
	dir, err := primary()
	if err == nil {
		return dir
	}

	if dir, err = os.UserHomeDir(); err == nil {
		return filepath.Join(dir, fallback)
	}

	if dir, err = os.Getwd(); err == nil {
		return dir
	}

	return "."
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), basePrefix())
	},
)

// cacheDir returns the cache directory path used for transient files.
var cacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), basePrefix())
	},
)

// configPath returns the absolute path to a file or directory formed by joining
// the global configuration directory path with the given path elements.
//
// If no elements are given, it is equivalent to calling [configDir].
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	// Create base config directory
	err := os.MkdirAll(configDir(), defaultDirMode)
	if err != nil {
		return err
	}

	// Create base cache directory
	err = os.MkdirAll(cacheDir(), defaultDirMode)
	if err != nil {
		return err
	}

	return nil
}

// prusaDirs returns the directories where PrusaSlicer keeps its data on this
// platform: the native install, the Flatpak sandbox, and the alpha channel.
func prusaDirs() []string {
	base := userDir(os.UserConfigDir, ".config")
	dirs := []string{filepath.Join(base, "PrusaSlicer")}

	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(
			home, ".var", "app", "com.prusa3d.PrusaSlicer", "config", "PrusaSlicer",
		))
	}

	return append(dirs, filepath.Join(base, "PrusaSlicer-alpha"))
}

// searchPath returns the PrusaSlicer data directories to search, in order.
// The list-separated entries of env come first, followed by the platform
// defaults. Empty and repeated entries are dropped.
func searchPath(env string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(prusaDirs()...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(filepath.SplitList(env)...),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(joined) {
		if dir = strings.TrimSpace(dir); dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// prusaFile returns the PrusaSlicer.ini in the first of dirs that has one.
// If none does, it names the file in the first directory, where a new one
// would be created.
func prusaFile(dirs []string) string {
	for _, dir := range dirs {
		path := filepath.Join(dir, prusaBase)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}

	if len(dirs) > 0 {
		return filepath.Join(dirs[0], prusaBase)
	}

	return prusaBase
}
