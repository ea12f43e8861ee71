package lighting

import (
	"fmt"
	"image/color"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 8-bit RGB colour as written in annotations (#RRGGBB).
type Color struct {
	R, G, B uint8
}

var (
	White      = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	FireOrange = Color{R: 0xFF, G: 0x66, B: 0x00}
)

// colorTokenPattern accepts exactly six hex digits; shorthand #RGB is not a colour token.
var colorTokenPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsColorToken reports whether tok is a #RRGGBB colour (case-insensitive).
func IsColorToken(tok string) bool {
	return colorTokenPattern.MatchString(tok)
}

// ParseColor parses a #RRGGBB token.
func ParseColor(tok string) (Color, bool) {
	if !IsColorToken(tok) {
		return Color{}, false
	}
	c, err := colorful.Hex(tok)
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, true
}

// String formats the colour as upper-case #RRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA returns the colour as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Lerp interpolates each RGB channel linearly from c towards to.
// t is clamped to [0, 1]; channels are rounded to the nearest integer.
func (c Color) Lerp(to Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	dst := colorful.Color{R: float64(to.R) / 255, G: float64(to.G) / 255, B: float64(to.B) / 255}
	r, g, b := from.BlendRgb(dst, t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
