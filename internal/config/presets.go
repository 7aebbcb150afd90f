package config

import (
	"fmt"
	"sort"
)

// Presets are ready-made scenes, addressed by name.
var Presets = map[string]*Config{
	"rain":       withScene(rain(10, 6)),
	"pile":       withScene(pile(40, 400, 300)),
	"rope":       withScene([]string{"rope 250 40 240 12", "rope 550 40 160 8", "circle 400 300 20"}),
	"softbody":   withScene([]string{"softbody 250 200 16 60", "softbody 550 150 10 40 5"}),
	"springbody": withScene([]string{"springbody 250 200 16 60", "springbody 550 150 10 40 5", "circle 400 500 25"}),
	"zero_g": withTunables(withScene(append(pile(30, 400, 300), "springbody 150 150 12 50")), func(c *Config) {
		c.Tunables.Gravity = 0
	}),
}

func withScene(scene []string) *Config {
	cfg := DefaultConfig()
	cfg.Scene = scene
	return cfg
}

func withTunables(cfg *Config, fn func(*Config)) *Config {
	fn(cfg)
	return cfg
}

// rain lays out a cols x rows lattice of circles across the top of the box.
func rain(cols, rows int) []string {
	lines := make([]string, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := 80 + float64(c)*70 + float64(r%2)*35
			y := 40 + float64(r)*30
			lines = append(lines, fmt.Sprintf("circle %g %g", x, y))
		}
	}
	return lines
}

// pile spawns n circles on one point. They separate through the jitter
// fallback.
func pile(n int, x, y float64) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("circle %g %g", x, y)
	}
	return lines
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Scene = append([]string(nil), p.Scene...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
