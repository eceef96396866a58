package monitoring

import "testing"

func TestFPSCounterRefreshesEveryN(t *testing.T) {
	c := NewFPSCounter(3)

	dts := []float64{0.1, 0.2, 0.02, 0.5, 0.5, 0.01}
	want := []float64{0, 0, 50, 50, 50, 100}
	for i, dt := range dts {
		updated := c.Tick(dt)
		if updated != ((i+1)%3 == 0) {
			t.Errorf("frame %d: updated = %v", i, updated)
		}
		if c.FPS() != want[i] {
			t.Errorf("frame %d: FPS = %v, want %v", i, c.FPS(), want[i])
		}
	}
}

func TestFPSCounterIgnoresZeroFrameTime(t *testing.T) {
	c := NewFPSCounter(0)
	c.Tick(0.25)
	c.Tick(0)
	if c.FPS() != 4 {
		t.Errorf("FPS = %v, want the last valid readout 4", c.FPS())
	}
}
