package monitoring

// FPSCounter holds a frame rate readout that refreshes every N frames, so
// the HUD number stays readable.
type FPSCounter struct {
	every  int
	frames int
	fps    float64
}

func NewFPSCounter(every int) *FPSCounter {
	if every < 1 {
		every = 1
	}
	return &FPSCounter{every: every}
}

// Tick counts one frame that took dt seconds. On every Nth frame the readout
// becomes 1/dt and Tick returns true.
func (c *FPSCounter) Tick(dt float64) bool {
	c.frames++
	if c.frames < c.every {
		return false
	}
	c.frames = 0
	if dt > 0 {
		c.fps = 1 / dt
	}
	return true
}

// FPS returns the current readout.
func (c *FPSCounter) FPS() float64 {
	return c.fps
}
