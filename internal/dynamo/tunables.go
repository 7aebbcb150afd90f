package dynamo

import (
	"fmt"
	"sort"
)

const (
	DefaultGravity       = 9.8
	DefaultTimeScale     = 8.0
	DefaultAirResistance = 0.0005
	DefaultCollideLoss   = -0.25
	DefaultSpringConst   = 4.0
	DefaultDampConst     = 2.0
	DefaultRadius        = 6.0
	DefaultLinkLength    = 20.0
)

// Tunables are the scalar parameters read by the integrator and the
// constraint solver every frame. A world owns exactly one instance and
// mutates it in place.
type Tunables struct {
	Gravity           float64 `yaml:"gravity"`
	TimeScale         float64 `yaml:"time_scale"`
	AirResistance     float64 `yaml:"air_resistance"`
	CollideLoss       float64 `yaml:"collide_loss"`
	SpringConst       float64 `yaml:"spring_const"`
	DampConst         float64 `yaml:"damp_const"`
	DefaultRadius     float64 `yaml:"default_radius"`
	DefaultLinkLength float64 `yaml:"default_link_length"`
}

func DefaultTunables() Tunables {
	return Tunables{
		Gravity:           DefaultGravity,
		TimeScale:         DefaultTimeScale,
		AirResistance:     DefaultAirResistance,
		CollideLoss:       DefaultCollideLoss,
		SpringConst:       DefaultSpringConst,
		DampConst:         DefaultDampConst,
		DefaultRadius:     DefaultRadius,
		DefaultLinkLength: DefaultLinkLength,
	}
}

func (t *Tunables) fields() map[string]*float64 {
	return map[string]*float64{
		"gravity":   &t.Gravity,
		"timescale": &t.TimeScale,
		"air":       &t.AirResistance,
		"loss":      &t.CollideLoss,
		"spring":    &t.SpringConst,
		"damp":      &t.DampConst,
		"radius":    &t.DefaultRadius,
		"length":    &t.DefaultLinkLength,
	}
}

// aliases accepted by Get/Set in addition to the short names.
var paramAliases = map[string]string{
	"time_scale":          "timescale",
	"air_resistance":      "air",
	"collide_loss":        "loss",
	"spring_const":        "spring",
	"damp_const":          "damp",
	"default_radius":      "radius",
	"default_link_length": "length",
}

// Names returns the short parameter names in sorted order.
func (t *Tunables) Names() []string {
	names := make([]string, 0, 8)
	for k := range t.fields() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (t *Tunables) Get(name string) (float64, error) {
	if a, ok := paramAliases[name]; ok {
		name = a
	}
	p, ok := t.fields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *p, nil
}

func (t *Tunables) Set(name string, value float64) error {
	if a, ok := paramAliases[name]; ok {
		name = a
	}
	p, ok := t.fields()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*p = value
	return nil
}

// GetParams mirrors Names/Get as a map, for UI listing.
func (t *Tunables) GetParams() map[string]float64 {
	out := make(map[string]float64, 8)
	for k, p := range t.fields() {
		out[k] = *p
	}
	return out
}
