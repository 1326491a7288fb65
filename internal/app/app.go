// Package app wires the catalog, asset pipeline, scene and interface
// panels into an ebiten game. All state changes happen in Update in a
// fixed order: drain dialog results, drain metadata loads, drain spawn
// requests, poll asset handles, then recompute the camera against the
// panel insets. Draw only replays what Update decided.
package app

import (
	"errors"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/blendview/blendview/internal/assets"
	"github.com/blendview/blendview/internal/catalog"
	"github.com/blendview/blendview/internal/config"
	"github.com/blendview/blendview/internal/picker"
	"github.com/blendview/blendview/internal/scene"
	"github.com/blendview/blendview/internal/ui"
)

const (
	leftPanelWidth    = 260
	rightPanelWidth   = 280
	topPanelHeight    = 28
	bottomPanelHeight = 24

	previewSize = 2.5
)

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// spawnRequest asks for object objectIdx of catalog entry fileIdx to be
// placed in the scene.
type spawnRequest struct {
	fileIdx   int
	objectIdx int
}

// binding is a spawned node waiting for its asset handles to settle.
type binding struct {
	node *scene.Node
	mesh *assets.Handle
	mat  *assets.Handle
}

type pickResult struct {
	path string
	err  error
}

// App is the ebiten game.
type App struct {
	cfg config.Config

	cat    *catalog.Catalog
	reader catalog.Reader
	srv    *assets.Server
	pick   picker.Picker
	scn    *scene.Scene
	cam    *scene.Camera
	panels *ui.Context

	loadQueue  []int
	spawnQueue []spawnRequest
	pending    []binding

	picking bool
	picks   chan pickResult

	width, height int
	status        string
	lastCamErr    string
}

// New builds the application. The blend-backed library serves both the
// catalog reader and the asset server so each picked file is parsed at
// most once.
func New(cfg config.Config) *App {
	lib := assets.NewBlendLibrary()
	return newApp(cfg, lib, assets.NewServer(lib), picker.Native{})
}

func newApp(cfg config.Config, reader catalog.Reader, srv *assets.Server, pick picker.Picker) *App {
	a := &App{
		cfg:    cfg,
		cat:    catalog.New(),
		reader: reader,
		srv:    srv,
		pick:   pick,
		scn:    scene.New(),
		panels: ui.New(ui.DefaultStyle()),
		picks:  make(chan pickResult, 1),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		status: "pick a .blend file to begin",
	}
	a.buildScene()
	return a
}

// buildScene places the fixed content: a ground plane and the camera
// looking at the origin.
func (a *App) buildScene() {
	ground := scene.NewMesh(
		[]mgl64.Vec3{{-5, 0, -5}, {5, 0, -5}, {5, 0, 5}, {-5, 0, 5}},
		[][]int{{0, 1, 2, 3}},
	)
	a.scn.AddNode(&scene.Node{
		Name:  "Ground",
		Mesh:  ground,
		Color: rgba(62, 66, 74),
	})

	a.cam = scene.NewLookAtCamera(
		mgl64.Vec3{-2, 2.5, 5},
		mgl64.Vec3{},
		mgl64.Vec3{0, 1, 0},
		math.Pi/4,
	)
	a.scn.AddCamera(a.cam)
}

func (a *App) Update() error {
	x, y := ebiten.CursorPosition()
	in := ui.Input{
		MouseX:  x,
		MouseY:  y,
		Clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	a.step(in)
	return nil
}

// step runs one frame of application logic. Split from Update so tests
// can drive frames with synthetic input.
func (a *App) step(in ui.Input) {
	a.panels.Begin(a.width, a.height, in)
	a.topPanel()
	a.bottomPanel()
	a.filePanel()
	a.sidePanel()
	a.panels.End()

	a.drainPicks()
	a.drainLoads()
	a.drainSpawns()
	a.pollBindings()
	a.compensate()
}

func (a *App) topPanel() {
	a.panels.BeginTopPanel(topPanelHeight)
	a.panels.Label("blendview   " + a.status)
	a.panels.EndPanel()
}

func (a *App) bottomPanel() {
	a.panels.BeginBottomPanel(bottomPanelHeight)
	a.panels.Label("click a file to list its objects, click an object to spawn it")
	a.panels.EndPanel()
}

// filePanel lists the picked files; the objects of the selected file
// appear indented under it as spawn buttons.
func (a *App) filePanel() {
	a.panels.BeginLeftPanel(leftPanelWidth)
	a.panels.Label("Files")
	for i := 0; i < a.cat.Len(); i++ {
		e := a.cat.Entry(i)
		if a.panels.SelectableButton(filepath.Base(e.Path), a.cat.IsSelected(i)) {
			if a.cat.Toggle(i) {
				a.loadQueue = append(a.loadQueue, i)
			}
		}
		if !a.cat.IsSelected(i) {
			continue
		}
		for j, name := range e.ObjectNames {
			if a.panels.Button("  " + name) {
				a.spawnQueue = append(a.spawnQueue, spawnRequest{fileIdx: i, objectIdx: j})
			}
		}
	}
	a.panels.EndPanel()
}

func (a *App) sidePanel() {
	a.panels.BeginRightPanel(rightPanelWidth)
	if a.panels.Button("Open .blend file...") {
		a.requestPick()
	}
	a.panels.Spacer()
	if i, ok := a.cat.Selected(); ok {
		e := a.cat.Entry(i)
		a.panels.Label(filepath.Base(e.Path))
		if e.Loaded() {
			a.panels.Label(plural(len(e.ObjectNames), "object"))
		} else {
			a.panels.Label("reading...")
		}
	}
	a.panels.EndPanel()
}

// requestPick opens the native dialog on its own goroutine; it blocks
// until the user answers, and the game loop must not.
func (a *App) requestPick() {
	if a.picking {
		return
	}
	a.picking = true
	go func() {
		path, err := a.pick.PickBlendFile(a.cfg.StartDir)
		a.picks <- pickResult{path: path, err: err}
	}()
}

func (a *App) drainPicks() {
	select {
	case res := <-a.picks:
		a.picking = false
		switch {
		case errors.Is(res.err, picker.ErrCancelled):
		case res.err != nil:
			log.Printf("file dialog: %v", res.err)
			a.status = "file dialog failed"
		default:
			i := a.cat.Add(res.path)
			log.Printf("added %s", res.path)
			a.status = "added " + filepath.Base(res.path)
			if a.cat.Toggle(i) {
				a.loadQueue = append(a.loadQueue, i)
			}
		}
	default:
	}
}

func (a *App) drainLoads() {
	for _, i := range a.loadQueue {
		if err := a.cat.LoadMetadata(i, a.reader); err != nil {
			log.Printf("metadata: %v", err)
			a.status = "could not read " + filepath.Base(a.cat.Entry(i).Path)
		}
	}
	a.loadQueue = a.loadQueue[:0]
}

// drainSpawns replaces the preview with the newest request. Earlier
// previews are removed first, so at most one preview object ever lives
// in the scene.
func (a *App) drainSpawns() {
	for _, req := range a.spawnQueue {
		a.spawn(req)
	}
	a.spawnQueue = a.spawnQueue[:0]
}

func (a *App) spawn(req spawnRequest) {
	e := a.cat.Entry(req.fileIdx)
	if req.objectIdx < 0 || req.objectIdx >= len(e.ObjectNames) {
		return
	}
	name := e.ObjectNames[req.objectIdx]

	a.scn.RemovePreviewNodes()
	a.dropPendingBindings()

	node := &scene.Node{
		Name:     name,
		Color:    rgba(150, 150, 160),
		Position: mgl64.Vec3{0, previewSize / 2, 0}, // rest on the ground plane
		Preview:  true,
	}
	a.scn.AddNode(node)
	a.pending = append(a.pending, binding{
		node: node,
		mesh: a.srv.Load(assets.MeshAddress(e.Path, name)),
		mat:  a.srv.Load(assets.MaterialAddress(e.Path, a.cfg.Preview.Material)),
	})
	log.Printf("spawning %s from %s", name, e.Path)
	a.status = "spawning " + name
}

// dropPendingBindings forgets handles whose nodes were just removed.
// The loads themselves finish in the background and are discarded.
func (a *App) dropPendingBindings() {
	a.pending = a.pending[:0]
}

// pollBindings binds settled handles to their nodes. A node whose mesh
// fails to decode stays empty and the failure lands in the status line.
func (a *App) pollBindings() {
	kept := a.pending[:0]
	for _, b := range a.pending {
		settled := true

		if b.mesh != nil {
			switch b.mesh.State() {
			case assets.StatePending:
				settled = false
			case assets.StateLoaded:
				b.node.Mesh = meshFromAsset(b.mesh.Mesh())
				b.mesh = nil
			case assets.StateFailed:
				log.Printf("mesh load: %v", b.mesh.Err())
				a.status = "could not load mesh " + b.node.Name
				b.mesh = nil
			}
		}
		if b.mat != nil {
			switch b.mat.State() {
			case assets.StatePending:
				settled = false
			case assets.StateLoaded:
				b.node.Color = b.mat.Color()
				b.mat = nil
			case assets.StateFailed:
				log.Printf("material load: %v", b.mat.Err())
				b.mat = nil
			}
		}

		if !settled {
			kept = append(kept, b)
		}
	}
	a.pending = kept
}

// meshFromAsset recentres the decoded geometry and scales it to a
// uniform preview size so any object is visible from the fixed camera.
func meshFromAsset(ma *assets.MeshAsset) *scene.Mesh {
	verts := make([]mgl64.Vec3, len(ma.Verts))
	for i, v := range ma.Verts {
		verts[i] = mgl64.Vec3{v[0], v[1], v[2]}
	}
	m := scene.NewMesh(verts, ma.Polys)
	m.Center()
	m.ScaleTo(previewSize)
	return m
}

func (a *App) compensate() {
	in := a.panels.Insets()
	err := a.scn.CompensateCamera(scene.Insets{
		Left:   float64(in.Left),
		Top:    float64(in.Top),
		Right:  float64(in.Right),
		Bottom: float64(in.Bottom),
	}, float64(a.width), float64(a.height))

	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != a.lastCamErr {
		if msg != "" {
			log.Printf("camera: %v", err)
		}
		a.lastCamErr = msg
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(rgba(24, 26, 30))
	a.scn.Draw(screen, a.width, a.height)
	a.panels.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		a.width, a.height = outsideWidth, outsideHeight
	}
	return a.width, a.height
}
