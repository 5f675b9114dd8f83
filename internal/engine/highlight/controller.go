// Package highlight manages the timed highlight of a picked region.
package highlight

import (
	"time"

	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/pkg/math"
)

// Controller is a two-state machine: idle, or holding exactly one
// highlighted region with an expiry deadline. A new pick always restores
// the previous region before painting the next one, so two regions are
// never highlighted at once. The deadline is polled once per frame via
// Update; there is no timer callback.
type Controller struct {
	duration       time.Duration
	highlightColor math.Vec3
	defaultColor   math.Vec3

	active    []int
	expiresAt time.Time
}

// NewController returns an idle controller.
func NewController(duration time.Duration, highlightColor, defaultColor math.Vec3) *Controller {
	return &Controller{
		duration:       duration,
		highlightColor: highlightColor,
		defaultColor:   defaultColor,
	}
}

// Apply paints the region into the mesh color buffer and arms the expiry
// timer, superseding any currently highlighted region.
func (c *Controller) Apply(m *mesh.Mesh, region []int, now time.Time) {
	c.restore(m)
	for _, tri := range region {
		m.SetTriangleColor(tri, c.highlightColor)
	}
	c.active = region
	c.expiresAt = now.Add(c.duration)
}

// Update checks the deadline and reverts the highlight when it has
// elapsed. Returns true when a highlight expired this call.
func (c *Controller) Update(m *mesh.Mesh, now time.Time) bool {
	if len(c.active) == 0 || now.Before(c.expiresAt) {
		return false
	}
	c.restore(m)
	return true
}

// Clear reverts any active highlight immediately.
func (c *Controller) Clear(m *mesh.Mesh) {
	c.restore(m)
}

// Reset drops the highlight state without repainting. Use when the mesh
// itself is replaced and the held indices no longer apply.
func (c *Controller) Reset() {
	c.active = nil
}

// Active returns the currently highlighted triangle indices, nil when idle.
func (c *Controller) Active() []int {
	return c.active
}

func (c *Controller) restore(m *mesh.Mesh) {
	for _, tri := range c.active {
		m.SetTriangleColor(tri, c.defaultColor)
	}
	c.active = nil
}
