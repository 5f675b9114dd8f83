// Package camera provides the orbiting camera used by the model viewer.
package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"

	"github.com/resound-dev/resound/pkg/math"
)

// OrbitCamera orbits the origin, parameterized by distance, heading, and
// pitch in degrees. Heading is unbounded (wraps for display); pitch and
// distance are clamped to their bounds on every update.
type OrbitCamera struct {
	Distance float32
	Heading  float32 // degrees around +Z
	Pitch    float32 // degrees above the horizon

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32 // degrees per pixel of drag
	ZoomSensitivity float32 // distance units per wheel notch

	// Zoom smoothing: wheel input moves targetDistance, a critically
	// damped spring moves Distance toward it each tick.
	smoothing      bool
	targetDistance float64
	zoomVelocity   float64
	zoomSpring     harmonica.Spring
}

// NewOrbitCamera returns a camera with the viewer's default pose.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5.0,
		Heading:         35.0,
		Pitch:           35.0,
		MinDistance:     1.0,
		MaxDistance:     5.0,
		MinPitch:        0.0,
		MaxPitch:        85.0,
		DragSensitivity: 0.5,
		ZoomSensitivity: 0.25,
	}
}

// EnableSmoothing turns on spring-smoothed zooming at the given frame rate.
func (c *OrbitCamera) EnableSmoothing(fps int) {
	c.smoothing = true
	c.targetDistance = float64(c.Distance)
	c.zoomVelocity = 0
	// Damping 1.0 is critically damped: no overshoot past the clamped range.
	c.zoomSpring = harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)
}

// ClampPose forces distance and pitch back into their bounds. Drag and
// zoom clamp on their own; this is for poses assigned directly, such as
// values read from a config file.
func (c *OrbitCamera) ClampPose() {
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// ApplyDrag updates heading and pitch from a pointer drag delta in pixels.
func (c *OrbitCamera) ApplyDrag(dx, dy float32) {
	c.Heading += dx * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+dy*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// ApplyZoom updates the camera distance from a wheel delta. Positive
// delta zooms in.
func (c *OrbitCamera) ApplyZoom(delta float32) {
	if c.smoothing {
		c.targetDistance = float64(clamp(float32(c.targetDistance)-delta*c.ZoomSensitivity, c.MinDistance, c.MaxDistance))
		return
	}
	c.Distance = clamp(c.Distance-delta*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Update advances the zoom spring by one tick. A no-op when smoothing is
// disabled.
func (c *OrbitCamera) Update() {
	if !c.smoothing {
		return
	}
	pos, vel := c.zoomSpring.Update(float64(c.Distance), c.zoomVelocity, c.targetDistance)
	c.Distance = clamp(float32(pos), c.MinDistance, c.MaxDistance)
	c.zoomVelocity = vel
}

// Position returns the camera position in world space, derived from
// spherical coordinates around the origin.
func (c *OrbitCamera) Position() math.Vec3 {
	heading := float64(math.Radians(c.Heading))
	pitch := float64(math.Radians(c.Pitch))

	return math.Vec3{
		X: c.Distance * float32(gomath.Sin(heading)*gomath.Cos(pitch)),
		Y: -c.Distance * float32(gomath.Cos(heading)*gomath.Cos(pitch)),
		Z: c.Distance * float32(gomath.Sin(pitch)),
	}
}

// ViewMatrix returns the look-at transform for the current pose,
// looking at the origin with +Z up.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), math.Vec3{}, math.Vec3{Z: 1})
}

// NormalizedHeading returns the heading wrapped into [0, 360) for display.
func (c *OrbitCamera) NormalizedHeading() float32 {
	h := float32(gomath.Mod(float64(c.Heading), 360))
	if h < 0 {
		h += 360
	}
	return h
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
