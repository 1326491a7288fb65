package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	names map[string][]string
	err   error
	calls int
}

func (r *fakeReader) ListObjects(path string) ([]string, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.names[path], nil
}

func TestToggleSelectsAndClears(t *testing.T) {
	c := New()
	a := c.Add("a.blend")
	b := c.Add("b.blend")

	_, ok := c.Selected()
	assert.False(t, ok, "new catalog has no selection")

	assert.True(t, c.Toggle(a))
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, a, sel)

	// Selecting another file replaces the selection.
	assert.True(t, c.Toggle(b))
	sel, _ = c.Selected()
	assert.Equal(t, b, sel)
	assert.False(t, c.IsSelected(a))

	// Toggling the selected file clears it.
	assert.False(t, c.Toggle(b))
	_, ok = c.Selected()
	assert.False(t, ok)
}

func TestToggleOutOfRange(t *testing.T) {
	c := New()
	assert.False(t, c.Toggle(0))
	assert.False(t, c.Toggle(-1))
	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestLoadMetadataPopulatesOnce(t *testing.T) {
	c := New()
	i := c.Add("demo.blend")
	r := &fakeReader{names: map[string][]string{
		"demo.blend": {"Cube", "Lamp", "Camera"},
	}}

	require.NoError(t, c.LoadMetadata(i, r))
	assert.Equal(t, []string{"Cube", "Lamp", "Camera"}, c.Entry(i).ObjectNames)
	assert.True(t, c.Entry(i).Loaded())

	// Re-selecting the same file must not duplicate names.
	require.NoError(t, c.LoadMetadata(i, r))
	assert.Equal(t, []string{"Cube", "Lamp", "Camera"}, c.Entry(i).ObjectNames)
	assert.Equal(t, 1, r.calls)
}

func TestLoadMetadataFailure(t *testing.T) {
	c := New()
	i := c.Add("missing.blend")
	boom := errors.New("no such file")
	r := &fakeReader{err: boom}

	err := c.LoadMetadata(i, r)
	require.Error(t, err)
	var fa *FileAccessError
	require.ErrorAs(t, err, &fa)
	assert.Equal(t, "missing.blend", fa.Path)
	assert.ErrorIs(t, err, boom)

	// A failed load stays retryable.
	assert.False(t, c.Entry(i).Loaded())
	r.err = nil
	r.names = map[string][]string{"missing.blend": {"Cube"}}
	require.NoError(t, c.LoadMetadata(i, r))
	assert.Equal(t, []string{"Cube"}, c.Entry(i).ObjectNames)
}

func TestLoadMetadataOutOfRange(t *testing.T) {
	c := New()
	err := c.LoadMetadata(3, &fakeReader{})
	assert.Error(t, err)
}

func TestSelectionSurvivesAppends(t *testing.T) {
	c := New()
	a := c.Add("a.blend")
	c.Toggle(a)
	c.Add("b.blend")
	c.Add("c.blend")
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, a, sel)
}
