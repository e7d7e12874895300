// Package config loads the optional pocketdash.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	pderrors "github.com/go-drift/pocketdash/pkg/errors"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "pocketdash.yaml"

// Config represents the optional pocketdash.yaml configuration.
type Config struct {
	// Requires is the minimum pocketdash version the file was written for.
	Requires  string          `yaml:"requires,omitempty"`
	Display   DisplayConfig   `yaml:"display"`
	Animation AnimationConfig `yaml:"animation"`
	List      ListConfig      `yaml:"list"`
}

// DisplayConfig contains display settings.
type DisplayConfig struct {
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
	FPS    float64 `yaml:"fps,omitempty"`
}

// AnimationConfig contains transition settings. Durations use Go syntax
// ("150ms"); "0" or a negative duration turns the animation off.
type AnimationConfig struct {
	Scroll string `yaml:"scroll,omitempty"`
	Push   string `yaml:"push,omitempty"`
	Step   int    `yaml:"step,omitempty"`
}

// ListConfig contains menu list settings.
type ListConfig struct {
	VisibleRows int  `yaml:"visible_rows,omitempty"`
	Gap         *int `yaml:"gap,omitempty"`
	Virtual     bool `yaml:"virtual,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Width          int
	Height         int
	FPS            float64
	ScrollDuration time.Duration
	PushDuration   time.Duration
	BaseStep       int
	VisibleRows    int
	Gap            int
	Virtual        bool
}

// Defaults returns the values used when no file is present.
func Defaults() Resolved {
	return Resolved{
		Width:          128,
		Height:         64,
		FPS:            20,
		ScrollDuration: 150 * time.Millisecond,
		PushDuration:   200 * time.Millisecond,
		BaseStep:       4,
		VisibleRows:    4,
		Gap:            1,
	}
}

// LoadOptional reads the file at path if present. A missing file yields an
// empty Config.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads the file at path (if present), fills in defaults and
// validates the result against the running version.
func Resolve(path, version string) (*Resolved, error) {
	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(version)
}

// Resolve fills in defaults and validates cfg.
func (cfg *Config) Resolve(version string) (*Resolved, error) {
	if err := checkRequires(cfg.Requires, version); err != nil {
		return nil, err
	}

	var err error
	r := Defaults()
	if cfg.Display.Width != 0 {
		r.Width = cfg.Display.Width
	}
	if cfg.Display.Height != 0 {
		r.Height = cfg.Display.Height
	}
	if cfg.Display.FPS != 0 {
		r.FPS = cfg.Display.FPS
	}
	if r.Width < 0 || r.Height < 0 {
		return nil, invalid("display size %dx%d must be positive", r.Width, r.Height)
	}
	if r.FPS < 0 {
		return nil, invalid("display.fps %g must be positive", r.FPS)
	}

	if r.ScrollDuration, err = duration("animation.scroll", cfg.Animation.Scroll, r.ScrollDuration); err != nil {
		return nil, err
	}
	if r.PushDuration, err = duration("animation.push", cfg.Animation.Push, r.PushDuration); err != nil {
		return nil, err
	}
	if cfg.Animation.Step < 0 {
		return nil, invalid("animation.step %d must be positive", cfg.Animation.Step)
	}
	if cfg.Animation.Step > 0 {
		r.BaseStep = cfg.Animation.Step
	}

	if cfg.List.VisibleRows < 0 {
		return nil, invalid("list.visible_rows %d must be positive", cfg.List.VisibleRows)
	}
	if cfg.List.VisibleRows > 0 {
		r.VisibleRows = cfg.List.VisibleRows
	}
	if cfg.List.Gap != nil {
		if *cfg.List.Gap < 0 {
			return nil, invalid("list.gap %d must not be negative", *cfg.List.Gap)
		}
		r.Gap = *cfg.List.Gap
	}
	r.Virtual = cfg.List.Virtual
	return &r, nil
}

// duration parses a duration setting. Zero or negative disables the
// animation, which the widgets express as a negative duration.
func duration(field, s string, def time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, invalid("%s: %v", field, err)
	}
	if d <= 0 {
		return -1, nil
	}
	return d, nil
}

func checkRequires(requires, version string) error {
	requires = strings.TrimSpace(requires)
	if requires == "" {
		return nil
	}
	want := canonical(requires)
	if !semver.IsValid(want) {
		return invalid("requires %q is not a semantic version", requires)
	}
	have := canonical(version)
	if !semver.IsValid(have) {
		return nil
	}
	// A prerelease satisfies its own release.
	have = strings.TrimSuffix(have, semver.Prerelease(have))
	if semver.Compare(want, have) > 0 {
		return invalid("file requires pocketdash %s, running %s", semver.Canonical(want), semver.Canonical(have))
	}
	return nil
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func invalid(format string, args ...any) error {
	return &pderrors.FrameworkError{
		Op:   "config.Resolve",
		Kind: pderrors.KindConfig,
		Err:  fmt.Errorf(format, args...),
	}
}
