package graphics

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

// Rotating sprite sheets are laid out as RotationViews columns (one per view
// angle) by AnimationRows rows. This is an asset convention, not something
// derived from the sheet size.
const (
	RotationViews = 8
	AnimationRows = 7
)

var (
	ErrUnknownSprite = errors.New("unknown sprite")
	ErrSheetLayout   = errors.New("sprite sheet does not match its frame layout")
)

// Sprite is the shared, read-only description of a billboard. Entities point
// at a Sprite; they never copy it.
type Sprite struct {
	Name   string
	TexID  int // Index into the sprite store's sheet table
	Width  int // Sheet size in pixels, taken from the decoded image
	Height int

	FrameWidth  int // Size of one view/animation cell
	FrameHeight int

	UScale, VScale float64 // Billboard size relative to a wall
	UMove, VMove   float64 // Screen offset in pixels at unit depth
	Rotating       bool
}

// SpriteMeta is the per-sprite metadata file.
type SpriteMeta struct {
	Name        string  `yaml:"name"`
	Image       string  `yaml:"image"`
	UScale      float64 `yaml:"u_scale"`
	VScale      float64 `yaml:"v_scale"`
	UMove       float64 `yaml:"u_move"`
	VMove       float64 `yaml:"v_move"`
	Rotating    bool    `yaml:"rotating"`
	FrameWidth  int     `yaml:"frame_width"`
	FrameHeight int     `yaml:"frame_height"`
}

// SpriteStore owns every sprite sheet and its descriptor.
type SpriteStore struct {
	sprites []*Sprite
	sheets  []*Image
	byName  map[string]*Sprite
}

func NewSpriteStore() *SpriteStore {
	return &SpriteStore{byName: make(map[string]*Sprite)}
}

// Add decodes the sheet into the store and returns its descriptor. Sheet
// dimensions always come from img.
func (s *SpriteStore) Add(meta SpriteMeta, img image.Image) (*Sprite, error) {
	if meta.Name == "" {
		return nil, fmt.Errorf("%w: sprite without a name", ErrSheetLayout)
	}
	if _, dup := s.byName[meta.Name]; dup {
		return nil, fmt.Errorf("duplicate sprite %q", meta.Name)
	}
	sheet := FromImage(img)

	sp := &Sprite{
		Name:        meta.Name,
		TexID:       len(s.sheets),
		Width:       sheet.Width,
		Height:      sheet.Height,
		FrameWidth:  sheet.Width,
		FrameHeight: sheet.Height,
		UScale:      meta.UScale,
		VScale:      meta.VScale,
		UMove:       meta.UMove,
		VMove:       meta.VMove,
		Rotating:    meta.Rotating,
	}
	if sp.UScale == 0 {
		sp.UScale = 1
	}
	if sp.VScale == 0 {
		sp.VScale = 1
	}
	switch {
	case meta.Rotating:
		sp.FrameWidth = sheet.Width / RotationViews
		sp.FrameHeight = sheet.Height / AnimationRows
	case meta.FrameWidth > 0 || meta.FrameHeight > 0:
		if meta.FrameWidth > 0 {
			sp.FrameWidth = meta.FrameWidth
		}
		if meta.FrameHeight > 0 {
			sp.FrameHeight = meta.FrameHeight
		}
	}
	if sp.FrameWidth <= 0 || sp.FrameHeight <= 0 || sp.FrameWidth > sheet.Width || sp.FrameHeight > sheet.Height {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrSheetLayout, meta.Name, sheet.Width, sheet.Height)
	}

	s.sprites = append(s.sprites, sp)
	s.sheets = append(s.sheets, sheet)
	s.byName[sp.Name] = sp
	return sp, nil
}

// Get looks a sprite up by name.
func (s *SpriteStore) Get(name string) (*Sprite, error) {
	sp, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}
	return sp, nil
}

// Sheet returns the pixel buffer behind a sprite.
func (s *SpriteStore) Sheet(sp *Sprite) *Image {
	return s.sheets[sp.TexID]
}

func (s *SpriteStore) Len() int { return len(s.sprites) }

// Names lists sprite names in sorted order.
func (s *SpriteStore) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bytes reports the memory held by sprite sheets.
func (s *SpriteStore) Bytes() int {
	n := 0
	for _, sh := range s.sheets {
		n += len(sh.Pix)
	}
	return n
}

// EachSheet calls fn for every sheet in id order.
func (s *SpriteStore) EachSheet(fn func(sp *Sprite, sheet *Image)) {
	for i, sp := range s.sprites {
		fn(sp, s.sheets[i])
	}
}
