package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"

	"wolfcast/internal/logging"
	"wolfcast/internal/threading/core"
)

// DecodeImage reads a PNG or BMP file.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// globAll returns the sorted, de-duplicated matches of several patterns.
func globAll(dir string, patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadTextures decodes every PNG/BMP in dir, in lexical file order, so the
// first file becomes texture id 1. Decoding runs on the worker pool.
func LoadTextures(dir string, size int, pool *core.WorkerPool, logger *zap.Logger) (*TextureStore, error) {
	logger = logging.OrNop(logger).Named("textures")

	store, err := NewTextureStore(size)
	if err != nil {
		return nil, err
	}
	paths, err := globAll(dir, "*.png", "*.bmp")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no wall textures found in %s", dir)
	}

	images, err := core.ParallelMap(pool, paths, DecodeImage)
	if err != nil {
		return nil, err
	}
	for i, img := range images {
		id, rescaled := store.Add(img)
		if rescaled {
			b := img.Bounds()
			logger.Warn("texture resampled to tile size",
				zap.String("file", paths[i]),
				zap.Int("width", b.Dx()),
				zap.Int("height", b.Dy()),
				zap.Int("size", size))
		}
		logger.Debug("texture loaded", zap.Int("id", id), zap.String("file", filepath.Base(paths[i])))
	}
	logger.Info("wall textures loaded",
		zap.Int("count", store.Len()),
		zap.String("memory", humanize.Bytes(uint64(store.Bytes()))))
	return store, nil
}

// LoadSprites reads sprite metadata files (*.yaml, *.yml, *.json) from dir.
// Each names its sheet image relative to dir; the default is <name>.png.
func LoadSprites(dir string, pool *core.WorkerPool, logger *zap.Logger) (*SpriteStore, error) {
	logger = logging.OrNop(logger).Named("sprites")

	paths, err := globAll(dir, "*.yaml", "*.yml", "*.json")
	if err != nil {
		return nil, err
	}

	type decoded struct {
		meta SpriteMeta
		img  image.Image
	}
	loaded, err := core.ParallelMap(pool, paths, func(path string) (decoded, error) {
		var meta SpriteMeta
		if err := readYAML(path, &meta); err != nil {
			return decoded{}, err
		}
		if meta.Name == "" {
			meta.Name = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), "_meta")
		}
		if meta.Image == "" {
			meta.Image = meta.Name + ".png"
		}
		img, err := DecodeImage(filepath.Join(dir, meta.Image))
		if err != nil {
			return decoded{}, fmt.Errorf("sprite %s: %w", meta.Name, err)
		}
		return decoded{meta: meta, img: img}, nil
	})
	if err != nil {
		return nil, err
	}

	store := NewSpriteStore()
	for _, d := range loaded {
		sp, err := store.Add(d.meta, d.img)
		if err != nil {
			return nil, err
		}
		logger.Debug("sprite loaded",
			zap.String("name", sp.Name),
			zap.Int("width", sp.Width),
			zap.Int("height", sp.Height),
			zap.Bool("rotating", sp.Rotating))
	}
	logger.Info("sprites loaded",
		zap.Int("count", store.Len()),
		zap.String("memory", humanize.Bytes(uint64(store.Bytes()))))
	return store, nil
}

// LoadAnimations reads one clip per *.yaml, *.yml or *.json file in dir.
func LoadAnimations(dir string, logger *zap.Logger) (*AnimationLibrary, error) {
	logger = logging.OrNop(logger).Named("animations")

	paths, err := globAll(dir, "*.yaml", "*.yml", "*.json")
	if err != nil {
		return nil, err
	}
	lib := NewAnimationLibrary()
	for _, path := range paths {
		var clip Animation
		if err := readYAML(path, &clip); err != nil {
			return nil, err
		}
		if clip.Name == "" {
			clip.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if err := lib.Add(&clip); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	logger.Info("animations loaded", zap.Strings("clips", lib.Names()))
	return lib, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
