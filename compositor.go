package storycam

// DepthFeedback is the compositor's view of the AutoscrollCoordinator: the
// focus point to fall back on, and the resolved-depth feedback channel.
type DepthFeedback interface {
	Baseline() Vec3
	Observe(resolved float64)
}

// CameraCompositor turns the effect stack into a camera transform once per
// frame. Zoom, X and Z are smoothed by independent springs so effect
// transitions never jump.
type CameraCompositor struct {
	cfg      CameraConfig
	stack    *EffectStack
	camera   *Camera
	feedback DepthFeedback

	zoom, x, z *Spring
	focus      Vec3
}

// NewCameraCompositor creates a compositor driving a new Camera.
func NewCameraCompositor(cfg CameraConfig, spring SpringConfig, stack *EffectStack, feedback DepthFeedback) *CameraCompositor {
	return &CameraCompositor{
		cfg:      cfg,
		stack:    stack,
		camera:   newCamera(cfg),
		feedback: feedback,
		zoom:     NewSpring(spring),
		x:        NewSpring(spring),
		z:        NewSpring(spring),
	}
}

// Camera returns the driven camera.
func (c *CameraCompositor) Camera() *Camera {
	return c.camera
}

// Focus returns the smoothed focus point from the last Update.
func (c *CameraCompositor) Focus() Vec3 {
	return c.focus
}

// ResolvedDepth returns the smoothed depth from the last Update.
func (c *CameraCompositor) ResolvedDepth() float64 {
	return c.focus[2]
}

// SetLens changes the field of view (degrees) and clip planes. The
// projection is rebuilt on the next Update only if a value changed.
func (c *CameraCompositor) SetLens(fov, near, far float64) {
	c.cfg.FOV, c.cfg.Near, c.cfg.Far = fov, near, far
}

// SetAspect changes the viewport aspect ratio.
func (c *CameraCompositor) SetAspect(aspect float64) {
	c.cfg.Aspect = aspect
}

// Update resolves the stack, advances the springs by dt seconds, applies
// the result to the camera, and reports the resolved depth to the
// feedback channel. It returns the state to present.
func (c *CameraCompositor) Update(dt float64) CameraState {
	zoom, zoomSmooth, ok := c.stack.ResolveZoom()
	if !ok {
		zoom, zoomSmooth = c.cfg.Zoom, true
	}
	target, targetSmooth, ok := c.stack.ResolveTarget()
	if !ok {
		target, targetSmooth = c.feedback.Baseline(), true
	}

	zv := drive(c.zoom, zoom, zoomSmooth, dt)
	xv := drive(c.x, target[0], targetSmooth, dt)
	dv := drive(c.z, target[2], targetSmooth, dt)
	c.focus = Vec3{xv, 0, dv}

	cam := c.camera
	cam.SetLens(c.cfg.FOV, c.cfg.Near, c.cfg.Far)
	cam.SetAspect(c.cfg.Aspect)
	cam.Zoom = zv
	cam.Position = Vec3{xv, c.cfg.Height * zv, dv + c.cfg.Distance*zv}
	cam.Rotation = Vec3{c.cfg.Pitch, 0, 0}

	state := cam.State(c.focus)
	c.feedback.Observe(dv)
	return state
}

// Reset drops the spring state; the next Update snaps to its targets.
func (c *CameraCompositor) Reset() {
	c.zoom.Reset()
	c.x.Reset()
	c.z.Reset()
	c.focus = Vec3{}
}

func drive(s *Spring, target float64, smooth bool, dt float64) float64 {
	if !smooth {
		s.Snap(target)
		return target
	}
	return s.Step(target, dt)
}
