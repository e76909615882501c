// Package storycam drives a 3D camera through a branching narrative for
// [Ebitengine] games.
//
// The camera is never moved directly. Everything that wants to influence it
// (the autoscroll coordinator, trigger volumes placed in the world,
// hold-to-zoom) publishes an [Effect] onto a shared [EffectStack]. Once per
// frame the [CameraCompositor] resolves the stack into a target and a zoom,
// smooths them with critically damped springs, and applies the result to
// the [Camera].
//
// # Quick start
//
// A [Director] owns the singletons and runs them in order:
//
//	cfg, err := storycam.LoadConfig("storycam.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	story := storycam.NewStory(storycam.DefaultLayout())
//	story.AppendStory("p0", "You wake in a cold room.", "Open the door", "Wait")
//
//	d := storycam.NewDirector(storycam.Options{
//		Config:  cfg,
//		Content: story,
//		Input:   storycam.NewEbitenInput(1280, 720),
//	})
//	for _, vc := range story.PhaseTriggers(0, storycam.ChoiceOptions{Current: true}) {
//		d.AddVolume(vc)
//	}
//
// Then call [Director.Update] from ebiten's Update and draw with the
// returned [CameraState]:
//
//	func (g *Game) Update() error {
//		g.state = g.director.Update(1.0 / 60)
//		return nil
//	}
//
// # Effect stack
//
// Effects are ordered; later entries win. Top-priority effects beat
// ordinary ones regardless of order. Zoom and target are resolved
// independently, so a zoom-only effect does not discard another effect's
// target:
//
//	stack.Add(storycam.TargetEffect("trigger-a", storycam.Vec3{2, 0, 10}))
//	stack.Add(storycam.ZoomEffect("spacebar-zoom", 0.3), storycam.TopPriority())
//	// ResolveZoom -> 0.3, ResolveTarget -> (2, 0, 10)
//
// # Trigger volumes
//
// A [TriggerVolume] is an axis-aligned box. While the sampled world
// position is inside it, the volume publishes its effect. Its
// [FiringPolicy] decides when OnTrigger runs: on entry, after a dwell
// duration, or when the player clicks. Only one volume at a time owns the
// [TriggerArbiter], which routes the interact action and the overlay
// prompt.
//
// # Autoscroll
//
// The [AutoscrollCoordinator] advances depth by a fixed step every frame
// until the player scrolls forward with the wheel, which hands control to
// the player. Autoscroll resumes once the camera comes to rest at or behind
// the deepest point it has reached.
//
// # Testing and automation
//
// [Director.InjectWheel], [Director.InjectInteract], and friends queue
// synthetic frames. [LoadScript] parses a JSON script of such actions for
// headless runs, and [Director.Snapshot] captures the frame state for
// [Director.WriteSnapshots].
//
// [Ebitengine]: https://ebitengine.org
package storycam
