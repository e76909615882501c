package storycam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraState is the snapshot handed to the Renderer each frame.
type CameraState struct {
	Position   Vec3
	Rotation   Vec3
	Zoom       float64
	FOV        float64
	Near       float64
	Far        float64
	Aspect     float64
	View       mgl64.Mat4
	Projection mgl64.Mat4
	// Focus is the smoothed point the camera frames; Focus.Z() is the
	// resolved depth.
	Focus Vec3
}

// Camera is a perspective camera looking down at the narrative floor.
//
// Position and Rotation change every frame. The projection matrix depends
// only on the lens (FOV, near, far, aspect) and is rebuilt only when one
// of those changes.
type Camera struct {
	// Position is the world-space eye position.
	Position Vec3
	// Rotation is the Euler rotation in radians, applied X then Y then Z.
	Rotation Vec3
	// Zoom scales the eye's distance from its focus (1 = normal, <1 = closer).
	Zoom float64

	fov, near, far, aspect float64

	projection  mgl64.Mat4
	dirty       bool
	projUpdates int
}

// newCamera creates a Camera with the lens from cfg.
func newCamera(cfg CameraConfig) *Camera {
	return &Camera{
		Rotation: Vec3{cfg.Pitch, 0, 0},
		Zoom:     cfg.Zoom,
		fov:      cfg.FOV,
		near:     cfg.Near,
		far:      cfg.Far,
		aspect:   cfg.Aspect,
		dirty:    true,
	}
}

// SetLens updates the field of view (degrees) and clip planes. The
// projection is marked for rebuild only when a value actually changes.
func (c *Camera) SetLens(fov, near, far float64) {
	if fov == c.fov && near == c.near && far == c.far {
		return
	}
	c.fov, c.near, c.far = fov, near, far
	c.dirty = true
}

// SetAspect updates the viewport aspect ratio.
func (c *Camera) SetAspect(aspect float64) {
	if aspect == c.aspect {
		return
	}
	c.aspect = aspect
	c.dirty = true
}

// Lens returns the field of view (degrees) and clip planes.
func (c *Camera) Lens() (fov, near, far float64) {
	return c.fov, c.near, c.far
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Projection returns the cached projection matrix, rebuilding it if the
// lens changed.
func (c *Camera) Projection() mgl64.Mat4 {
	if c.dirty {
		c.projection = mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
		c.dirty = false
		c.projUpdates++
	}
	return c.projection
}

// ProjectionUpdates returns how many times the projection was rebuilt.
func (c *Camera) ProjectionUpdates() int {
	return c.projUpdates
}

// World returns the camera's world transform.
func (c *Camera) World() mgl64.Mat4 {
	r := c.Rotation
	return mgl64.Translate3D(c.Position[0], c.Position[1], c.Position[2]).
		Mul4(mgl64.HomogRotate3DX(r[0])).
		Mul4(mgl64.HomogRotate3DY(r[1])).
		Mul4(mgl64.HomogRotate3DZ(r[2]))
}

// View returns the view matrix (inverse of the world transform).
func (c *Camera) View() mgl64.Mat4 {
	return c.World().Inv()
}

// Forward returns the direction the camera looks along.
func (c *Camera) Forward() Vec3 {
	return c.World().Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3().Normalize()
}

// ScreenRay returns a world-space ray through the given normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c *Camera) ScreenRay(ndcX, ndcY float64) (origin, dir Vec3) {
	inv := c.Projection().Mul4(c.View()).Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	n := near.Vec3().Mul(1 / near[3])
	f := far.Vec3().Mul(1 / far[3])
	return n, f.Sub(n).Normalize()
}

// State returns the renderer snapshot.
func (c *Camera) State(focus Vec3) CameraState {
	return CameraState{
		Position:   c.Position,
		Rotation:   c.Rotation,
		Zoom:       c.Zoom,
		FOV:        c.fov,
		Near:       c.near,
		Far:        c.far,
		Aspect:     c.aspect,
		View:       c.View(),
		Projection: c.Projection(),
		Focus:      focus,
	}
}

// FloorHit intersects a ray with the floor plane y=0. ok is false when the
// ray is parallel to the floor or points away from it.
func FloorHit(origin, dir Vec3) (hit Vec3, ok bool) {
	if math.Abs(dir[1]) < 1e-9 {
		return Vec3{}, false
	}
	t := -origin[1] / dir[1]
	if t < 0 {
		return Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
