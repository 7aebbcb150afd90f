package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/sandsim/internal/command"
	"github.com/san-kum/sandsim/internal/dynamo"
	"github.com/san-kum/sandsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames = 600
	DefaultSeed   = 1
)

// Config describes one sandbox run: the box, the clock, the tunables and a
// scene written in the console language.
type Config struct {
	Width    float64         `yaml:"width"`
	Height   float64         `yaml:"height"`
	CellSize float64         `yaml:"cell_size"`
	Dt       float64         `yaml:"dt"`
	Frames   int             `yaml:"frames"`
	Seed     int64           `yaml:"seed"`
	Tunables dynamo.Tunables `yaml:"tunables"`
	Scene    []string        `yaml:"scene"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    sim.DefaultWidth,
		Height:   sim.DefaultHeight,
		CellSize: sim.DefaultCellSize,
		Dt:       sim.DefaultDt,
		Frames:   DefaultFrames,
		Seed:     DefaultSeed,
		Tunables: dynamo.DefaultTunables(),
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// value from base; a scene in the file replaces the base scene. base is
// not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	cfg.Scene = append([]string(nil), base.Scene...)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.CellSize <= 0 {
		return fmt.Errorf("%w: width, height and cell_size must be positive", dynamo.ErrInvalidConfig)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrInvalidConfig, c.Frames)
	}
	return nil
}

// Options converts the config into world options.
func (c *Config) Options(logger *log.Logger) sim.Options {
	tn := c.Tunables
	return sim.Options{
		Width:    c.Width,
		Height:   c.Height,
		CellSize: c.CellSize,
		Seed:     c.Seed,
		Tunables: &tn,
		Logger:   logger,
	}
}

func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{Dt: c.Dt, Frames: c.Frames, ValidateState: true}
}

// Build populates w from the scene lines. It stops at the first line that
// fails to parse or apply.
func (c *Config) Build(w command.World) error {
	for i, line := range c.Scene {
		cmd, err := command.Parse(line)
		if err != nil {
			return fmt.Errorf("scene line %d: %w", i+1, err)
		}
		if cmd == nil {
			continue
		}
		if _, err := cmd.Apply(w); err != nil {
			return fmt.Errorf("scene line %d %q: %w", i+1, line, err)
		}
	}
	return nil
}

// NewWorld builds a world from the config and loads its scene.
func (c *Config) NewWorld(logger *log.Logger) (*sim.World, error) {
	w, err := sim.New(c.Options(logger))
	if err != nil {
		return nil, err
	}
	if err := c.Build(w); err != nil {
		return nil, err
	}
	return w, nil
}
