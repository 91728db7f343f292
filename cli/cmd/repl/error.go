package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds    = errors.New("index out of range")
	ErrEditDeclined   = errors.New("decline edit")
	ErrUnknownCommand = errors.New("unknown command (try 'help')")
	ErrUsage          = errors.New("usage")
	ErrNoSection      = errors.New("no such section")
	ErrNoKey          = errors.New("no such key")
	ErrNoTarget       = errors.New("no file to write")
	ErrUnsavedChanges = errors.New("unsaved changes (write them, or quit again to discard)")
)
