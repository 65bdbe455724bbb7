package geom

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a stroke color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}

	Primary   = RGB8(0x0d, 0x6e, 0xfd)
	Secondary = RGB8(0x6c, 0x75, 0x7d)
	Success   = RGB8(0x19, 0x87, 0x54)
	Danger    = RGB8(0xdc, 0x35, 0x45)
)

// PaletteNames lists the named colors accepted by ParseColor, in menu order.
var PaletteNames = []string{"Primary", "Secondary", "Success", "Danger", "White"}

// RGB8 builds an opaque color from 8-bit channels.
func RGB8(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// ParseColor resolves a palette name. Unknown names fall back to White
// and report false.
func ParseColor(name string) (Color, bool) {
	switch strings.ToLower(name) {
	case "primary":
		return Primary, true
	case "secondary":
		return Secondary, true
	case "success":
		return Success, true
	case "danger":
		return Danger, true
	case "white":
		return White, true
	default:
		return White, false
	}
}

// NRGBA converts to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}
}

// CSS formats the color as a Canvas2D rgba() string.
func (c Color) CSS() string {
	n := c.NRGBA()
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, c.A)
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
