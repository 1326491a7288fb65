// Package assets is the string-addressed asset pipeline. Requests like
// "scene.blend#MECube" return an opaque handle immediately; decoding
// runs on a background goroutine and the handle flips to loaded or
// failed when it finishes. Callers never await a load; they poll the
// handle state whenever they care.
package assets

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
)

// Sub-resource kinds understood by the pipeline, matching the blend
// datablock codes.
const (
	KindMesh     = "ME"
	KindMaterial = "MA"
)

// Address identifies a sub-resource inside a container file.
type Address struct {
	Path string
	Kind string
	Name string
}

func (a Address) String() string {
	return a.Path + "#" + a.Kind + a.Name
}

// MeshAddress builds the address of a named mesh inside path.
func MeshAddress(path, mesh string) string {
	return path + "#" + KindMesh + mesh
}

// MaterialAddress builds the address of a named material inside path.
func MaterialAddress(path, material string) string {
	return path + "#" + KindMaterial + material
}

// ParseAddress splits "<path>#<Kind><Name>" into its parts.
func ParseAddress(s string) (Address, error) {
	i := strings.LastIndex(s, "#")
	if i < 0 || len(s)-i < 3 {
		return Address{}, fmt.Errorf("assets: malformed address %q", s)
	}
	a := Address{Path: s[:i], Kind: s[i+1 : i+3], Name: s[i+3:]}
	if a.Path == "" {
		return Address{}, fmt.Errorf("assets: address %q has no path", s)
	}
	if a.Kind != KindMesh && a.Kind != KindMaterial {
		return Address{}, fmt.Errorf("assets: unknown sub-resource kind %q in %q", a.Kind, s)
	}
	return a, nil
}

// State is a handle's load state.
type State int

const (
	StatePending State = iota
	StateLoaded
	StateFailed
)

// Handle is an opaque reference to a possibly-not-yet-loaded asset.
type Handle struct {
	addr Address

	mu    sync.Mutex
	state State
	mesh  *MeshAsset
	color color.RGBA
	err   error
}

// MeshAsset is decoded mesh geometry, engine-agnostic.
type MeshAsset struct {
	Verts [][3]float64
	Polys [][]int
}

func (h *Handle) Address() Address { return h.addr }

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Mesh returns the decoded geometry, or nil while pending/failed.
func (h *Handle) Mesh() *MeshAsset {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mesh
}

// Color returns the resolved material color; only meaningful once
// loaded.
func (h *Handle) Color() color.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.color
}

// Err returns the load failure, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) completeMesh(m *MeshAsset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mesh = m
	h.state = StateLoaded
}

func (h *Handle) completeColor(c color.RGBA) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.color = c
	h.state = StateLoaded
}

func (h *Handle) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
	h.state = StateFailed
}

// Library decodes sub-resources out of container files. The production
// implementation wraps the blend package; tests substitute fakes.
type Library interface {
	Mesh(path, name string) (*MeshAsset, error)
	MaterialColor(path, name string) (color.RGBA, error)
}

// Server hands out handles and owns the load lifecycle.
type Server struct {
	lib     Library
	palette map[string]color.RGBA
	wg      sync.WaitGroup
}

// NewServer creates a pipeline over the given library. Materials that
// cannot be found in their container resolve to a placeholder palette
// color instead of failing, since preview materials are stand-ins
// anyway.
func NewServer(lib Library) *Server {
	return &Server{
		lib: lib,
		palette: map[string]color.RGBA{
			"Blue":  {R: 66, G: 135, B: 245, A: 255},
			"Red":   {R: 220, G: 68, B: 58, A: 255},
			"Green": {R: 70, G: 180, B: 90, A: 255},
		},
	}
}

var defaultColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}

// Load parses the address and starts an asynchronous decode. The
// returned handle is pending until the background work completes. A
// malformed address fails the handle immediately.
func (s *Server) Load(addr string) *Handle {
	a, err := ParseAddress(addr)
	h := &Handle{addr: a}
	if err != nil {
		h.fail(err)
		return h
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		switch a.Kind {
		case KindMesh:
			m, err := s.lib.Mesh(a.Path, a.Name)
			if err != nil {
				h.fail(err)
				return
			}
			h.completeMesh(m)
		case KindMaterial:
			c, err := s.lib.MaterialColor(a.Path, a.Name)
			if err != nil {
				c = s.placeholder(a.Name)
			}
			h.completeColor(c)
		}
	}()
	return h
}

func (s *Server) placeholder(name string) color.RGBA {
	if c, ok := s.palette[name]; ok {
		return c
	}
	return defaultColor
}

// Wait blocks until every load issued so far has settled. Used by
// tests; the app never waits.
func (s *Server) Wait() {
	s.wg.Wait()
}
