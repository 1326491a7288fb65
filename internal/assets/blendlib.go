package assets

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/blendview/blendview/internal/blend"
)

// BlendLibrary decodes meshes and materials out of .blend files. Parsed
// files are cached by path so repeated requests into the same file only
// read it once.
type BlendLibrary struct {
	mu    sync.Mutex
	files map[string]*blend.File
}

func NewBlendLibrary() *BlendLibrary {
	return &BlendLibrary{files: make(map[string]*blend.File)}
}

func (l *BlendLibrary) file(path string) (*blend.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.files[path]; ok {
		return f, nil
	}
	f, err := blend.Open(path)
	if err != nil {
		return nil, err
	}
	l.files[path] = f
	return f, nil
}

// ListObjects satisfies the catalog's reader, so one parsed-file cache
// serves both metadata listing and asset decoding.
func (l *BlendLibrary) ListObjects(path string) ([]string, error) {
	f, err := l.file(path)
	if err != nil {
		return nil, err
	}
	return f.ListObjects()
}

func (l *BlendLibrary) Mesh(path, name string) (*MeshAsset, error) {
	f, err := l.file(path)
	if err != nil {
		return nil, err
	}
	md, err := f.Mesh(name)
	if err != nil {
		return nil, fmt.Errorf("mesh %q in %s: %w", name, path, err)
	}
	return &MeshAsset{Verts: md.Verts, Polys: md.Polys}, nil
}

func (l *BlendLibrary) MaterialColor(path, name string) (color.RGBA, error) {
	f, err := l.file(path)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b, err := f.MaterialColor(name)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("material %q in %s: %w", name, path, err)
	}
	return color.RGBA{
		R: clamp8(r),
		G: clamp8(g),
		B: clamp8(b),
		A: 255,
	}, nil
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
