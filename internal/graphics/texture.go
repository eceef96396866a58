package graphics

import (
	"errors"
	"fmt"
	"image"

	"wolfcast/internal/mathutil"
)

var ErrTextureSize = errors.New("texture size must be a power of two")

// TextureStore holds wall textures by 1-indexed id, each with a darkened
// variant for Y-side hits. Floors and ceilings sample the normal variant.
// The store is read-only once loading finishes.
type TextureStore struct {
	size   int
	normal []*Image
	dark   []*Image
}

// NewTextureStore creates an empty store for size x size textures.
func NewTextureStore(size int) (*TextureStore, error) {
	if !mathutil.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrTextureSize, size)
	}
	return &TextureStore{size: size}, nil
}

// Add stores img as the next texture id and returns that id. Images of a
// different size are resampled to the store size. The second result reports
// whether resampling happened.
func (s *TextureStore) Add(img image.Image) (id int, rescaled bool) {
	var tex *Image
	b := img.Bounds()
	if b.Dx() == s.size && b.Dy() == s.size {
		tex = FromImage(img)
	} else {
		tex = Scaled(img, s.size, s.size)
		rescaled = true
	}
	s.normal = append(s.normal, tex)
	s.dark = append(s.dark, tex.Darkened())
	return len(s.normal), rescaled
}

// Size is the edge length of every texture in pixels.
func (s *TextureStore) Size() int { return s.size }

// Len is the number of textures; valid ids are 1..Len().
func (s *TextureStore) Len() int { return len(s.normal) }

// Wall returns texture id, darkened when dark is set. The id must be valid.
func (s *TextureStore) Wall(id int, dark bool) *Image {
	if dark {
		return s.dark[id-1]
	}
	return s.normal[id-1]
}

// Surface returns the floor/ceiling texture for id. The id must be valid.
func (s *TextureStore) Surface(id int) *Image {
	return s.normal[id-1]
}

// Bytes reports the memory held by pixel buffers, both variants included.
func (s *TextureStore) Bytes() int {
	n := 0
	for i := range s.normal {
		n += len(s.normal[i].Pix) + len(s.dark[i].Pix)
	}
	return n
}

// Each calls fn for every texture id with both variants.
func (s *TextureStore) Each(fn func(id int, normal, dark *Image)) {
	for i := range s.normal {
		fn(i+1, s.normal[i], s.dark[i])
	}
}
