package storycam

// InjectWheel queues a frame carrying a wheel delta. Injected frames are
// consumed one per Update, in order, and replace real input for that
// frame.
func (d *Director) InjectWheel(delta float64) {
	d.injectQueue = append(d.injectQueue, FrameInput{Wheel: delta})
}

// InjectInteract queues a frame with the interact action.
func (d *Director) InjectInteract() {
	d.injectQueue = append(d.injectQueue, FrameInput{Interact: true})
}

// InjectHold queues frames frames with the hold-to-zoom key held, followed
// by one frame with it released. Minimum frames is 1.
func (d *Director) InjectHold(frames int) {
	if frames < 1 {
		frames = 1
	}
	for range frames {
		d.injectQueue = append(d.injectQueue, FrameInput{ZoomHeld: true})
	}
	d.injectQueue = append(d.injectQueue, FrameInput{})
}

// InjectScroll queues a wheel gesture spread evenly over frames frames.
// Minimum frames is 1.
func (d *Director) InjectScroll(total float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	step := total / float64(frames)
	for range frames {
		d.InjectWheel(step)
	}
}

// InjectIdle queues frames empty frames, useful to keep real input out
// while a script waits.
func (d *Director) InjectIdle(frames int) {
	for range frames {
		d.injectQueue = append(d.injectQueue, FrameInput{})
	}
}

// nextInput pops one injected frame, falling back to the input source.
func (d *Director) nextInput() FrameInput {
	if len(d.injectQueue) > 0 {
		in := d.injectQueue[0]
		copy(d.injectQueue, d.injectQueue[1:])
		d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]
		return in
	}
	if d.input != nil {
		return d.input.Poll()
	}
	return FrameInput{}
}
