// Package viewer implements the interactive model viewer loop.
package viewer

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/resound-dev/resound/internal/acoustics"
	"github.com/resound-dev/resound/internal/config"
	"github.com/resound-dev/resound/internal/engine/camera"
	"github.com/resound-dev/resound/internal/engine/highlight"
	"github.com/resound-dev/resound/internal/engine/input"
	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/internal/engine/picking"
	"github.com/resound-dev/resound/internal/engine/renderer"
	"github.com/resound-dev/resound/internal/engine/window"
	"github.com/resound-dev/resound/internal/screenshot"
	"github.com/resound-dev/resound/internal/watch"
	"github.com/resound-dev/resound/pkg/formats"
	"github.com/resound-dev/resound/pkg/math"
)

// Selection describes one resolved pick: the hit triangle, the
// coplanar region grouped around it, and the surface registered with
// the acoustics room.
type Selection struct {
	Triangle int
	Region   []int
	Surface  acoustics.Surface
}

// Listener receives each resolved pick.
type Listener func(Selection)

// Viewer owns the window, the loaded mesh, and the interaction loop.
type Viewer struct {
	cfg       *config.Config
	modelPath string

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	mesh  *mesh.Mesh
	props mesh.Properties

	cam         *camera.OrbitCamera
	highlighter *highlight.Controller
	room        *acoustics.Room
	watcher     *watch.Watcher

	width  int
	height int

	// Quarter-turn flips around X, toggled from the keyboard for
	// models exported Y-up instead of Z-up.
	xTurns int

	running   bool
	listeners []Listener
}

// New creates a viewer for the given model file.
func New(cfg *config.Config, modelPath string) (*Viewer, error) {
	slog.Info("initializing viewer",
		"model", modelPath,
		"width", cfg.Graphics.Width,
		"height", cfg.Graphics.Height,
	)

	v := &Viewer{
		cfg:       cfg,
		modelPath: modelPath,
		width:     cfg.Graphics.Width,
		height:    cfg.Graphics.Height,
		room:      acoustics.NewRoom(),
	}

	var err error
	v.window, err = window.Open(window.Options{
		Title:      "Resound - " + filepath.Base(modelPath),
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.cam = camera.NewOrbitCamera()
	v.cam.Distance = cfg.Camera.Distance
	v.cam.Heading = cfg.Camera.Heading
	v.cam.Pitch = cfg.Camera.Pitch
	v.cam.MinDistance = cfg.Camera.MinDistance
	v.cam.MaxDistance = cfg.Camera.MaxDistance
	v.cam.MinPitch = cfg.Camera.MinPitch
	v.cam.MaxPitch = cfg.Camera.MaxPitch
	v.cam.DragSensitivity = cfg.Camera.DragSensitivity
	v.cam.ZoomSensitivity = cfg.Camera.ZoomSensitivity
	v.cam.ClampPose()
	if cfg.Camera.SmoothZoom {
		v.cam.EnableSmoothing(cfg.Viewer.FPS)
	}

	v.highlighter = highlight.NewController(
		time.Duration(cfg.Highlight.DurationMs)*time.Millisecond,
		vec3(cfg.Highlight.Color),
		vec3(cfg.Highlight.MeshColor),
	)

	if err := v.loadModel(modelPath); err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}

	if cfg.Viewer.WatchFile {
		v.watcher, err = watch.Watch(modelPath, 250*time.Millisecond)
		if err != nil {
			slog.Warn("file watching disabled", "error", err)
		}
	}

	return v, nil
}

// AddListener registers a callback invoked for each resolved pick.
func (v *Viewer) AddListener(l Listener) {
	v.listeners = append(v.listeners, l)
}

// Run drives the viewer until the window is closed or ESC is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		v.update(now)
		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			slog.Debug("frame stats",
				"fps", frameCount,
				"dt", fmt.Sprintf("%.2fms", dt*1000),
				"heading", v.cam.NormalizedHeading(),
				"pitch", v.cam.Pitch,
				"distance", v.cam.Distance,
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases the viewer's resources.
func (v *Viewer) Close() {
	slog.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventQuit:
		v.running = false

	case input.EventWindowResize:
		v.width = event.Width
		v.height = event.Height
		v.renderer.Resize(event.Width, event.Height)

	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_X:
			v.xTurns = (v.xTurns + 1) % 4
			slog.Debug("model flipped", "quarter_turns", v.xTurns)
		case sdl.SCANCODE_F12:
			pixels, w, h := v.renderer.ReadPixels()
			path, err := screenshot.Save(pixels, w, h, "")
			if err != nil {
				slog.Warn("screenshot failed", "error", err)
			} else {
				slog.Info("screenshot saved", "path", path)
			}
		}

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.pick(event.MouseX, event.MouseY)
		}

	case input.EventMouseDrag:
		v.cam.ApplyDrag(float32(event.DX), float32(event.DY))

	case input.EventMouseWheel:
		v.cam.ApplyZoom(float32(event.WheelY))
	}
}

func (v *Viewer) update(now time.Time) {
	v.cam.Update()

	if v.highlighter.Update(v.mesh, now) {
		v.renderer.UpdateColors(v.mesh)
	}

	if v.watcher != nil {
		select {
		case path := <-v.watcher.Changed():
			if err := v.loadModel(path); err != nil {
				slog.Warn("model reload failed", "error", err)
			}
		default:
		}
	}
}

func (v *Viewer) render() {
	view := v.cam.ViewMatrix()
	proj := v.projMatrix()
	model := v.modelMatrix()

	v.renderer.BeginFrame()
	v.renderer.DrawMesh(model, view, proj)
	if v.cfg.Highlight.ShowEdges {
		v.renderer.DrawEdges(model, view, proj)
	}
	if v.cfg.Highlight.ShowAxes {
		v.renderer.DrawAxes(view, proj)
	}
}

// pick resolves a click into a coplanar surface selection.
func (v *Viewer) pick(x, y int) {
	view := v.cam.ViewMatrix()
	proj := v.projMatrix()

	// Folding the model matrix into the view puts the ray in mesh
	// coordinates, so triangles are tested untransformed.
	vp := picking.Viewport{Width: v.width, Height: v.height}
	ray := picking.ScreenToRay(float32(x), float32(y), vp, view.Mul(v.modelMatrix()), proj)

	tri, ok := picking.Intersect(ray, v.mesh)
	if !ok {
		return
	}

	region := mesh.GroupRegion(v.mesh, tri)
	v.highlighter.Apply(v.mesh, region, time.Now())
	v.renderer.UpdateColors(v.mesh)

	surface := v.room.AddSurface(v.mesh, region)
	slog.Info("surface selected",
		"triangle", tri,
		"region_size", len(region),
		"area", surface.Area,
	)

	sel := newSelection(tri, region, surface)
	for _, l := range v.listeners {
		l(sel)
	}
}

// newSelection snapshots the region so a listener mutating it cannot
// disturb the slice the highlight controller still tracks.
func newSelection(tri int, region []int, surface acoustics.Surface) Selection {
	return Selection{
		Triangle: tri,
		Region:   append([]int(nil), region...),
		Surface:  surface,
	}
}

// loadModel loads the model file, prepares the mesh, and uploads it.
// A mesh that fails analysis is rejected outright; on a hot reload the
// previously loaded mesh stays in place.
func (v *Viewer) loadModel(path string) error {
	model, err := formats.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	m, err := mesh.FromModel(model)
	if err != nil {
		return err
	}
	m.FillColors(vec3(v.cfg.Highlight.MeshColor))

	props, err := mesh.Analyze(m)
	if err != nil {
		return fmt.Errorf("failed to analyze model %s: %w", path, err)
	}

	v.mesh = m
	v.props = props
	v.highlighter.Reset()
	v.room.Reset()
	v.renderer.LoadMesh(m)

	slog.Info("model loaded",
		"model", path,
		"triangles", m.TriangleCount(),
		"volume", props.Volume,
		"centroid", fmt.Sprintf("(%.3f, %.3f, %.3f)", props.Centroid.X, props.Centroid.Y, props.Centroid.Z),
	)
	return nil
}

func (v *Viewer) projMatrix() math.Mat4 {
	return math.Perspective(math.Radians(45), float32(v.width)/float32(v.height), 0.1, 100)
}

// modelMatrix centers the mesh on its centroid, normalizes its display
// size, and applies the keyboard X flip.
func (v *Viewer) modelMatrix() math.Mat4 {
	m := math.Identity()
	if v.xTurns != 0 {
		m = math.RotateX(math.Radians(float32(v.xTurns) * 90))
	}
	if v.props.Volume != 0 {
		s := v.props.DisplayScale()
		m = m.Mul(math.Scale(s, s, s))
	}
	c := v.props.Centroid
	return m.Mul(math.Translate(-c.X, -c.Y, -c.Z))
}

func vec3(c [3]float32) math.Vec3 {
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}
