package graphics

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownAnimation = errors.New("unknown animation")
	ErrBadAnimation     = errors.New("invalid animation clip")
)

// Frame is one animation step. X and Y address a cell of the sprite sheet.
type Frame struct {
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Duration  float64 `yaml:"duration"`
	Remaining float64 `yaml:"-"`
}

// Animation is a clip plus its playback position. Each entity owns its own
// copy; the library only hands out clones.
type Animation struct {
	Name      string  `yaml:"name"`
	Loop      bool    `yaml:"loop"`
	Permanent bool    `yaml:"permanent"`
	Frames    []Frame `yaml:"frames"`
	Index     int     `yaml:"-"`
}

// Clone returns an independent copy with its own frame timers.
func (a *Animation) Clone() *Animation {
	c := *a
	c.Frames = make([]Frame, len(a.Frames))
	copy(c.Frames, a.Frames)
	return &c
}

// Current returns the frame being shown.
func (a *Animation) Current() Frame {
	return a.Frames[a.Index]
}

// Tick advances playback by dt seconds. When the current frame's remaining
// time runs out it is reset to the nominal duration and the next frame
// becomes current. After the last frame a looping clip restarts, a permanent
// clip holds, and any other clip reports finished.
func (a *Animation) Tick(dt float64) (finished bool) {
	f := &a.Frames[a.Index]
	f.Remaining -= dt
	if f.Remaining > 0 {
		return false
	}
	f.Remaining = f.Duration

	if a.Index+1 < len(a.Frames) {
		a.Index++
		return false
	}
	switch {
	case a.Loop:
		a.Index = 0
		return false
	case a.Permanent:
		return false
	default:
		return true
	}
}

// Reset rewinds to the first frame with full timers.
func (a *Animation) Reset() {
	a.Index = 0
	for i := range a.Frames {
		a.Frames[i].Remaining = a.Frames[i].Duration
	}
}

// AnimationLibrary holds the template clips by name.
type AnimationLibrary struct {
	clips map[string]*Animation
}

func NewAnimationLibrary() *AnimationLibrary {
	return &AnimationLibrary{clips: make(map[string]*Animation)}
}

// Add validates and registers a clip template.
func (l *AnimationLibrary) Add(a *Animation) error {
	if a.Name == "" {
		return fmt.Errorf("%w: missing name", ErrBadAnimation)
	}
	if len(a.Frames) == 0 {
		return fmt.Errorf("%w: %s has no frames", ErrBadAnimation, a.Name)
	}
	for i, f := range a.Frames {
		if f.Duration <= 0 {
			return fmt.Errorf("%w: %s frame %d has duration %v", ErrBadAnimation, a.Name, i, f.Duration)
		}
		if f.X < 0 || f.Y < 0 {
			return fmt.Errorf("%w: %s frame %d has a negative cell", ErrBadAnimation, a.Name, i)
		}
	}
	if _, dup := l.clips[a.Name]; dup {
		return fmt.Errorf("%w: duplicate clip %s", ErrBadAnimation, a.Name)
	}
	tmpl := a.Clone()
	tmpl.Reset()
	l.clips[a.Name] = tmpl
	return nil
}

// Get returns a fresh copy of the named clip.
func (l *AnimationLibrary) Get(name string) (*Animation, error) {
	tmpl, ok := l.clips[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	return tmpl.Clone(), nil
}

// Names lists clip names in sorted order.
func (l *AnimationLibrary) Names() []string {
	names := make([]string, 0, len(l.clips))
	for name := range l.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
