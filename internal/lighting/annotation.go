package lighting

import (
	"strconv"
	"strings"
)

// Annotation formats the descriptor back into annotation syntax.
//
// The output always spells out every parameter, the offsets and the id, so
// that Parse(d.Annotation(), nil) yields a descriptor equal to d.
func (d Descriptor) Annotation() string {
	parts := []string{d.Type.String()}
	add := func(values ...string) { parts = append(parts, values...) }

	switch d.Type {
	case TypeLight:
		add(num(d.Radius), d.Color.String())
	case TypePulsate:
		add(d.Color.String(), num(d.PulsateSpeed), num(d.MinRadius), num(d.MaxRadius))
	case TypeFlicker:
		add(num(d.Radius), d.Color.String(), strconv.Itoa(d.FlickerInterval))
	case TypeFlashlight:
		add(num(d.ConeWidth), num(d.ConeLength), d.Color.String())
	case TypePhase:
		add(num(d.Radius), strconv.Itoa(d.PhaseSpeed))
		add(colorStrings(d.Colors)...)
	case TypeFire:
		add(num(d.Radius), d.Color.String(), num(d.FireSpeed), num(d.FireMinAlpha), num(d.FireMaxAlpha))
	case TypeBeam:
		add(num(d.BeamWidth), num(d.BeamLength), num(d.BeamOpacity),
			strconv.Itoa(d.BeamSpeed), strconv.Itoa(d.BeamCount), num(d.SpinRate))
		add(colorStrings(d.Colors)...)
	default:
		return ""
	}

	add(num(d.OffsetX), num(d.OffsetY), strconv.Itoa(d.ID))
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func colorStrings(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.String()
	}
	return out
}
