// Package lighting parses the light annotations attached to map events.
//
// An annotation is a short free-text note such as
//
//	phase 300 20 #0000FF #FF0000 100 50 1
//
// which is turned into one or more typed Descriptor values. The parser never
// fails: malformed numbers and colours are replaced by per-type defaults, and
// unknown light types are skipped.
package lighting

import (
	"math"
	"strings"
)

// LightType identifies one of the built-in light behaviours.
type LightType int

const (
	TypeUnknown LightType = iota
	TypeLight
	TypePulsate
	TypeFlicker
	TypeFlashlight
	TypePhase
	TypeFire
	TypeBeam
)

var typeNames = map[LightType]string{
	TypeLight:      "light",
	TypePulsate:    "pulsate",
	TypeFlicker:    "flicker",
	TypeFlashlight: "flashlight",
	TypePhase:      "phase",
	TypeFire:       "fire",
	TypeBeam:       "beam",
}

// String returns the annotation keyword of the type.
func (t LightType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseLightType resolves a base type keyword (case-insensitive).
// Returns TypeUnknown when the keyword is not a built-in type.
func ParseLightType(name string) LightType {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t
		}
	}
	return TypeUnknown
}

// Default parameter values, matching the values level designers rely on.
const (
	DefaultID              = 1
	DefaultRadius          = 300.0
	DefaultPulsateSpeed    = 0.5
	DefaultPulsateMin      = 250.0
	DefaultPulsateMax      = 350.0
	DefaultFlickerInterval = 120
	DefaultConeWidth       = 8.0
	DefaultConeLength      = 12.0
	DefaultPhaseSpeed      = 60
	DefaultFireSpeed       = 2.0
	DefaultFireMinAlpha    = 0.5
	DefaultFireMaxAlpha    = 0.9
	DefaultBeamWidth       = 50.0
	DefaultBeamLength      = 200.0
	DefaultBeamOpacity     = 1.0
	DefaultBeamCount       = 1

	// MaxBeamCount caps the beams of one fan; each beam is drawn as its own sprite.
	MaxBeamCount = 64
)

// Descriptor is the parsed configuration of a single light instance.
//
// Only the fields relevant to Type are meaningful; the others keep their zero
// value. Descriptors are immutable once parsed: the per-frame animation state
// lives next to them in the ECS components, not in here.
type Descriptor struct {
	Type LightType
	ID   int

	OffsetX float64
	OffsetY float64

	// Radius is used by light, flicker, phase and fire.
	Radius float64
	// Color is used by every type except phase and beam.
	Color Color

	// Pulsate
	PulsateSpeed float64
	MinRadius    float64
	MaxRadius    float64

	// Flicker: frames between two table steps.
	FlickerInterval int

	// Flashlight cone size, in tiles.
	ConeWidth  float64
	ConeLength float64

	// Phase: frames per colour transition.
	PhaseSpeed int

	// Fire
	FireSpeed    float64 // degrees per frame
	FireMinAlpha float64
	FireMaxAlpha float64

	// Beam
	BeamWidth   float64
	BeamLength  float64
	BeamOpacity float64
	BeamSpeed   int // frames per colour cycle, 0 disables cycling
	BeamCount   int
	SpinRate    float64 // degrees per frame

	// Colors holds the ordered colour list of phase and beam lights.
	Colors []Color
}

// NewDescriptor returns a descriptor of type t populated with every default.
func NewDescriptor(t LightType) Descriptor {
	d := Descriptor{Type: t, ID: DefaultID}
	switch t {
	case TypeLight:
		d.Radius = DefaultRadius
		d.Color = White
	case TypeFlicker:
		d.Radius = DefaultRadius
		d.Color = White
		d.FlickerInterval = DefaultFlickerInterval
	case TypePulsate:
		d.Color = White
		d.PulsateSpeed = DefaultPulsateSpeed
		d.MinRadius = DefaultPulsateMin
		d.MaxRadius = DefaultPulsateMax
	case TypeFlashlight:
		d.Color = White
		d.ConeWidth = DefaultConeWidth
		d.ConeLength = DefaultConeLength
	case TypePhase:
		d.Radius = DefaultRadius
		d.PhaseSpeed = DefaultPhaseSpeed
		d.Colors = []Color{White, White}
	case TypeFire:
		d.Radius = DefaultRadius
		d.Color = FireOrange
		d.FireSpeed = DefaultFireSpeed
		d.FireMinAlpha = DefaultFireMinAlpha
		d.FireMaxAlpha = DefaultFireMaxAlpha
	case TypeBeam:
		d.BeamWidth = DefaultBeamWidth
		d.BeamLength = DefaultBeamLength
		d.BeamOpacity = DefaultBeamOpacity
		d.BeamCount = DefaultBeamCount
		d.Colors = []Color{White}
	}
	return d
}

// Sanitize replaces every out-of-range field with its default.
// The parser already produces sanitized descriptors; the animation code calls
// this again for descriptors built by hand.
func (d *Descriptor) Sanitize() {
	def := NewDescriptor(d.Type)

	if d.ID <= 0 {
		d.ID = DefaultID
	}
	d.OffsetX = finiteOr(d.OffsetX, 0)
	d.OffsetY = finiteOr(d.OffsetY, 0)

	switch d.Type {
	case TypeLight, TypeFlicker, TypePhase, TypeFire:
		d.Radius = positiveOr(d.Radius, def.Radius)
	}

	switch d.Type {
	case TypePulsate:
		d.PulsateSpeed = positiveOr(d.PulsateSpeed, def.PulsateSpeed)
		d.MinRadius = positiveOr(d.MinRadius, def.MinRadius)
		d.MaxRadius = positiveOr(d.MaxRadius, def.MaxRadius)
		if d.MaxRadius < d.MinRadius {
			d.MinRadius, d.MaxRadius = def.MinRadius, def.MaxRadius
		}
	case TypeFlicker:
		if d.FlickerInterval < 1 {
			d.FlickerInterval = def.FlickerInterval
		}
	case TypeFlashlight:
		d.ConeWidth = positiveOr(d.ConeWidth, def.ConeWidth)
		d.ConeLength = positiveOr(d.ConeLength, def.ConeLength)
	case TypePhase:
		if d.PhaseSpeed < 1 {
			d.PhaseSpeed = def.PhaseSpeed
		}
		if len(d.Colors) < 2 {
			d.Colors = def.Colors
		}
	case TypeFire:
		d.FireSpeed = positiveOr(d.FireSpeed, def.FireSpeed)
		if !unitRange(d.FireMinAlpha) {
			d.FireMinAlpha = def.FireMinAlpha
		}
		if !unitRange(d.FireMaxAlpha) || d.FireMaxAlpha < d.FireMinAlpha {
			d.FireMaxAlpha = math.Max(def.FireMaxAlpha, d.FireMinAlpha)
		}
	case TypeBeam:
		d.BeamWidth = positiveOr(d.BeamWidth, def.BeamWidth)
		d.BeamLength = positiveOr(d.BeamLength, def.BeamLength)
		if !(d.BeamOpacity > 0 && d.BeamOpacity <= 1) {
			d.BeamOpacity = def.BeamOpacity
		}
		if d.BeamSpeed < 0 {
			d.BeamSpeed = 0
		}
		if d.BeamCount < 1 {
			d.BeamCount = def.BeamCount
		} else if d.BeamCount > MaxBeamCount {
			d.BeamCount = MaxBeamCount
		}
		d.SpinRate = finiteOr(d.SpinRate, 0)
		if len(d.Colors) == 0 {
			d.Colors = def.Colors
		}
	}
}

// Reach returns the largest distance, in pixels, that the light can cover
// from its origin. tileSize converts flashlight cone tiles to pixels.
func (d *Descriptor) Reach(tileSize float64) float64 {
	switch d.Type {
	case TypePulsate:
		return math.Max(d.MaxRadius, d.Radius)
	case TypeFlashlight:
		return math.Max(d.ConeWidth*tileSize, d.ConeLength*tileSize)
	case TypeBeam:
		return math.Max(d.BeamWidth, d.BeamLength)
	default:
		return d.Radius
	}
}

// IsTracking reports whether the type can follow a tracking target.
func (t LightType) IsTracking() bool {
	return t == TypeFlashlight || t == TypeBeam
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func positiveOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return def
	}
	return v
}

func unitRange(v float64) bool {
	return v >= 0 && v <= 1
}
