package entity

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrUnknownTemplate = errors.New("unknown entity template")

// Template describes a kind of entity by the names of its assets.
type Template struct {
	Sprite          string  `yaml:"sprite"`
	Animation       string  `yaml:"animation"`
	DeathAnimation  string  `yaml:"death_animation"`
	Collidable      bool    `yaml:"collidable"`
	CollisionRadius float64 `yaml:"collision_radius"`
}

// Templates maps template names to their definitions.
type Templates map[string]Template

type templateFile struct {
	Templates Templates `yaml:"templates"`
}

// LoadTemplates reads the entity template file.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open templates %s: %w", path, err)
	}
	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("error reading templates %s: %w", path, err)
	}
	for name, t := range tf.Templates {
		if t.Sprite == "" {
			return nil, fmt.Errorf("template %s has no sprite", name)
		}
		if t.CollisionRadius < 0 {
			return nil, fmt.Errorf("template %s has a negative collision radius", name)
		}
	}
	return tf.Templates, nil
}

// Get looks up a template by name.
func (ts Templates) Get(name string) (Template, error) {
	t, ok := ts[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Names lists template names in sorted order.
func (ts Templates) Names() []string {
	names := make([]string, 0, len(ts))
	for name := range ts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
