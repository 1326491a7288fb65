// Package catalog holds the in-memory list of picked .blend files, the
// object names discovered inside them, and which file is currently
// selected. Entries are append-only, so indices handed to the UI stay
// valid for the life of the process.
package catalog

import "fmt"

// Reader enumerates the named objects inside a container file. The
// production implementation wraps the blend package; tests substitute
// a fake.
type Reader interface {
	ListObjects(path string) ([]string, error)
}

// FileAccessError reports that a catalog entry's file could not be
// opened or decoded.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("catalog: reading %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// Entry is one picked file. Path never changes; ObjectNames is filled
// once by LoadMetadata.
type Entry struct {
	Path        string
	ObjectNames []string

	loaded bool
}

// Loaded reports whether metadata has been read for this entry.
func (e *Entry) Loaded() bool { return e.loaded }

// Catalog is the ordered list of picked files plus the selection.
type Catalog struct {
	entries  []*Entry
	selected int
}

func New() *Catalog {
	return &Catalog{selected: -1}
}

// Add appends a new entry and returns its index.
func (c *Catalog) Add(path string) int {
	c.entries = append(c.entries, &Entry{Path: path})
	return len(c.entries) - 1
}

func (c *Catalog) Len() int { return len(c.entries) }

// Entry returns the entry at index i. Indices come from iterating the
// catalog and are always in range.
func (c *Catalog) Entry(i int) *Entry { return c.entries[i] }

// Selected returns the selected index, or false when nothing is
// selected.
func (c *Catalog) Selected() (int, bool) {
	if c.selected < 0 {
		return 0, false
	}
	return c.selected, true
}

// IsSelected reports whether index i is the current selection.
func (c *Catalog) IsSelected(i int) bool { return c.selected == i }

// Toggle flips the selection state of index i: selecting it if it was
// not selected (replacing any other selection), clearing the selection
// if it was. Returns true when i is now selected.
func (c *Catalog) Toggle(i int) bool {
	if i < 0 || i >= len(c.entries) {
		return false
	}
	if c.selected == i {
		c.selected = -1
		return false
	}
	c.selected = i
	return true
}

// LoadMetadata reads the object names of entry i through r and appends
// them to the entry, in file-declaration order. A second call for an
// already-loaded entry is a no-op, so re-selecting a file never
// duplicates its names. A failed load leaves the entry unloaded so a
// later re-select retries it.
func (c *Catalog) LoadMetadata(i int, r Reader) error {
	if i < 0 || i >= len(c.entries) {
		return fmt.Errorf("catalog: index %d out of range", i)
	}
	e := c.entries[i]
	if e.loaded {
		return nil
	}
	names, err := r.ListObjects(e.Path)
	if err != nil {
		return &FileAccessError{Path: e.Path, Err: err}
	}
	e.ObjectNames = append(e.ObjectNames, names...)
	e.loaded = true
	return nil
}
