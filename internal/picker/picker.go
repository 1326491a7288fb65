// Package picker wraps the native file-open dialog.
package picker

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"
)

// ErrCancelled is returned when the user dismisses the dialog without
// choosing a file.
var ErrCancelled = errors.New("picker: cancelled")

// Picker asks the user for a .blend file. Implementations block until
// the dialog closes, so call them off the game loop.
type Picker interface {
	PickBlendFile(startDir string) (string, error)
}

// Native is the OS file dialog.
type Native struct{}

func (Native) PickBlendFile(startDir string) (string, error) {
	b := dialog.File().
		Filter("Blender files", "blend").
		Title("Open Blender File")
	if startDir != "" {
		b = b.SetStartDir(startDir)
	}
	path, err := b.Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", ErrCancelled
		}
		return "", err
	}
	return filepath.Clean(path), nil
}
