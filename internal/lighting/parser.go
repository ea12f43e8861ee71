package lighting

import (
	"math"
	"strconv"
	"strings"
)

// Parse turns an event annotation into light descriptors.
//
// The first token selects the light type. If it names a custom type in reg,
// every sub-light of that type is parsed with the rest of the annotation
// appended to its preset parameters, so "Siren 100 50 2" gives each sub-light
// the offsets (100, 50) and id 2. Otherwise the first token must be a base
// type keyword.
//
// Annotations with fewer than two tokens, or whose type is unknown, yield nil.
func Parse(note string, reg *Registry) []Descriptor {
	tokens := strings.Fields(note)
	if len(tokens) < 2 {
		return nil
	}

	typeName := strings.ToLower(tokens[0])
	remainder := tokens[1:]

	subLights, ok := reg.Lookup(typeName)
	if !ok {
		t := ParseLightType(typeName)
		if t == TypeUnknown {
			return nil
		}
		subLights = []SubLight{{BaseType: t}}
	}

	descriptors := make([]Descriptor, 0, len(subLights))
	for _, sub := range subLights {
		params := append(strings.Fields(sub.Parameters), remainder...)
		if d, ok := ParseTokens(sub.BaseType, params); ok {
			descriptors = append(descriptors, d)
		}
	}
	return descriptors
}

// ParseTokens parses the parameter tokens of a single base type (the type
// keyword itself is not part of params). It returns false for unknown types.
func ParseTokens(t LightType, params []string) (Descriptor, bool) {
	var d Descriptor
	switch t {
	case TypeLight:
		d = parseLight(params)
	case TypePulsate:
		d = parsePulsate(params)
	case TypeFlicker:
		d = parseFlicker(params)
	case TypeFlashlight:
		d = parseFlashlight(params)
	case TypePhase:
		d = parsePhase(params)
	case TypeFire:
		d = parseFire(params)
	case TypeBeam:
		d = parseBeam(params)
	default:
		return Descriptor{}, false
	}
	d.Sanitize()
	return d, true
}

// light radius color [offsetX offsetY] [id]
func parseLight(params []string) Descriptor {
	d := NewDescriptor(TypeLight)
	prefix, rest := splitPrefix(params, 2)
	d.Radius = floatAt(prefix, 0, d.Radius)
	d.Color = colorAt(prefix, 1, d.Color)
	resolveTrailing(rest, &d)
	return d
}

// pulsate color speed minRadius maxRadius [offsetX offsetY] [id]
func parsePulsate(params []string) Descriptor {
	d := NewDescriptor(TypePulsate)
	prefix, rest := splitPrefix(params, 4)
	d.Color = colorAt(prefix, 0, d.Color)
	d.PulsateSpeed = floatAt(prefix, 1, d.PulsateSpeed)
	d.MinRadius = floatAt(prefix, 2, d.MinRadius)
	d.MaxRadius = floatAt(prefix, 3, d.MaxRadius)
	resolveTrailing(rest, &d)
	return d
}

// flicker radius color interval [offsetX offsetY] [id]
func parseFlicker(params []string) Descriptor {
	d := NewDescriptor(TypeFlicker)
	prefix, rest := splitPrefix(params, 3)
	d.Radius = floatAt(prefix, 0, d.Radius)
	d.Color = colorAt(prefix, 1, d.Color)
	d.FlickerInterval = intAt(prefix, 2, d.FlickerInterval, 1)
	resolveTrailing(rest, &d)
	return d
}

// flashlight coneWidth coneLength color [offsetX offsetY] [id]
func parseFlashlight(params []string) Descriptor {
	d := NewDescriptor(TypeFlashlight)
	prefix, rest := splitPrefix(params, 3)
	d.ConeWidth = floatAt(prefix, 0, d.ConeWidth)
	d.ConeLength = floatAt(prefix, 1, d.ConeLength)
	d.Color = colorAt(prefix, 2, d.Color)
	resolveTrailing(rest, &d)
	return d
}

// phase radius speed color1 color2 ... [offsetX offsetY] [id]
func parsePhase(params []string) Descriptor {
	d := NewDescriptor(TypePhase)
	prefix, rest := splitPrefix(params, 2)
	d.Radius = floatAt(prefix, 0, d.Radius)
	d.PhaseSpeed = intAt(prefix, 1, d.PhaseSpeed, 1)
	middle := resolveTrailing(rest, &d)
	if colors := collectColors(middle); len(colors) >= 2 {
		d.Colors = colors
	}
	return d
}

// fire radius color [flickerSpeed] [minAlpha] [maxAlpha] [offsetX offsetY] [id]
//
// The optional fire parameters are positional, so the trailing block is
// counted rather than scanned: three tokens are offsets and id, two are
// offsets only and a single token is the id.
func parseFire(params []string) Descriptor {
	d := NewDescriptor(TypeFire)
	prefix, rest := splitPrefix(params, 2)
	d.Radius = floatAt(prefix, 0, d.Radius)
	d.Color = colorAt(prefix, 1, d.Color)

	optional, trailing := splitPrefix(rest, 3)
	d.FireSpeed = floatAt(optional, 0, d.FireSpeed)
	if v, ok := numberAt(optional, 1); ok && unitRange(v) {
		d.FireMinAlpha = v
	}
	if v, ok := numberAt(optional, 2); ok && unitRange(v) {
		d.FireMaxAlpha = v
	}

	switch {
	case len(trailing) >= 3:
		d.OffsetX = numberOr(trailing[0], 0)
		d.OffsetY = numberOr(trailing[1], 0)
		d.ID = idFrom(trailing[2])
	case len(trailing) == 2:
		d.OffsetX = numberOr(trailing[0], 0)
		d.OffsetY = numberOr(trailing[1], 0)
	case len(trailing) == 1:
		d.ID = idFrom(trailing[0])
	}
	return d
}

// beam width length opacity speed count [spinRate] color... [offsetX offsetY] [id]
func parseBeam(params []string) Descriptor {
	d := NewDescriptor(TypeBeam)
	prefix, rest := splitPrefix(params, 5)
	d.BeamWidth = floatAt(prefix, 0, d.BeamWidth)
	d.BeamLength = floatAt(prefix, 1, d.BeamLength)
	if v, ok := numberAt(prefix, 2); ok && v > 0 && v <= 1 {
		d.BeamOpacity = v
	}
	d.BeamSpeed = intAt(prefix, 3, d.BeamSpeed, 0)
	d.BeamCount = intAt(prefix, 4, d.BeamCount, 1)

	// A numeric token right after the fixed block is the spin rate.
	if len(rest) > 0 && !IsColorToken(rest[0]) {
		if v, ok := parseNumber(rest[0]); ok {
			d.SpinRate = v
			rest = rest[1:]
		}
	}

	middle := resolveTrailing(rest, &d)
	if colors := collectColors(middle); len(colors) > 0 {
		d.Colors = colors
	}
	return d
}

// resolveTrailing assigns offsets and id from the end of rest and returns the
// tokens before them. The last three tokens are taken as offsetX, offsetY
// and id only if all three are numeric; otherwise a numeric last token is the
// id alone and the offsets stay at zero.
func resolveTrailing(rest []string, d *Descriptor) []string {
	n := len(rest)
	if n >= 3 {
		x, okX := parseNumber(rest[n-3])
		y, okY := parseNumber(rest[n-2])
		_, okID := parseNumber(rest[n-1])
		if okX && okY && okID {
			d.OffsetX = x
			d.OffsetY = y
			d.ID = idFrom(rest[n-1])
			return rest[:n-3]
		}
	}
	if n >= 1 {
		if _, ok := parseNumber(rest[n-1]); ok {
			d.ID = idFrom(rest[n-1])
			return rest[:n-1]
		}
	}
	return rest
}

func collectColors(tokens []string) []Color {
	var colors []Color
	for _, tok := range tokens {
		if c, ok := ParseColor(tok); ok {
			colors = append(colors, c)
		}
	}
	return colors
}

func splitPrefix(tokens []string, n int) (prefix, rest []string) {
	if len(tokens) <= n {
		return tokens, nil
	}
	return tokens[:n], tokens[n:]
}

// parseNumber parses a decimal number, rejecting NaN and infinities.
func parseNumber(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func numberAt(tokens []string, i int) (float64, bool) {
	if i >= len(tokens) {
		return 0, false
	}
	return parseNumber(tokens[i])
}

func numberOr(tok string, def float64) float64 {
	if v, ok := parseNumber(tok); ok {
		return v
	}
	return def
}

// floatAt returns the positive number at tokens[i], or def.
func floatAt(tokens []string, i int, def float64) float64 {
	if v, ok := numberAt(tokens, i); ok && v > 0 {
		return v
	}
	return def
}

// intAt returns the number at tokens[i] truncated to an int, or def when it is
// missing or below min.
func intAt(tokens []string, i int, def, min int) int {
	v, ok := numberAt(tokens, i)
	if !ok || v < float64(min) || v > math.MaxInt32 {
		return def
	}
	return int(v)
}

func colorAt(tokens []string, i int, def Color) Color {
	if i >= len(tokens) {
		return def
	}
	if c, ok := ParseColor(tokens[i]); ok {
		return c
	}
	return def
}

func idFrom(tok string) int {
	v, ok := parseNumber(tok)
	if !ok || v < 1 || v > math.MaxInt32 {
		return DefaultID
	}
	return int(v)
}
