package layout

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a "#rrggbb" (or "#rgb") color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level palette literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Floats returns the color as normalized [0,1] components.
func (c Color) Floats() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// Palette is an ordered set of colors a group picks from.
type Palette []Color

// Contains reports whether c is one of the palette entries.
func (p Palette) Contains(c Color) bool {
	return p.IndexOf(c) >= 0
}

// IndexOf returns the position of c in the palette or -1.
func (p Palette) IndexOf(c Color) int {
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

// Default palettes.
var (
	BodyPalette = Palette{
		MustParseHex("#0f3d24"), // deep pine
		MustParseHex("#1a5235"), // lighter pine
		MustParseHex("#0a2615"), // darkest
		MustParseHex("#ffffff"), // snow tip
	}
	OrnamentPalette = Palette{
		MustParseHex("#dc2626"), // red
		MustParseHex("#2563eb"), // blue
		MustParseHex("#fbbf24"), // gold
		MustParseHex("#e5e7eb"), // silver
	}
	FramePalette  = Palette{MustParseHex("#ffffff")}
	SpiralPalette = Palette{MustParseHex("#fffee0")}
)
