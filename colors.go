package vtterm

import (
	"fmt"
	"image/color"
)

// ColorKind tags which variant a Color value holds.
type ColorKind uint8

const (
	// ColorDefault means "use the theme's default foreground/background",
	// tracked separately from any specific palette entry so that a later
	// theme change is reflected without re-writing every cell.
	ColorDefault ColorKind = iota
	// ColorPalette8 is one of the 8 standard or 8 bright ANSI slots (0-15).
	ColorPalette8
	// ColorPalette256 is an index into the 256-color cube/grayscale table.
	ColorPalette256
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a tagged value: default, an 8-color palette index, a 256-color
// palette index, or a 24-bit RGB triple. The zero Color is ColorDefault.
type Color struct {
	Kind  ColorKind
	Index uint8 // valid for ColorPalette8 and ColorPalette256
	RGB   color.RGBA
}

// DefaultColor returns the "use theme default" color value.
func DefaultColor() Color { return Color{Kind: ColorDefault} }

// PaletteColor returns a color referencing palette slot idx (0-255).
// Slots 0-15 are ColorPalette8, the rest ColorPalette256.
func PaletteColor(idx uint8) Color {
	if idx < 16 {
		return Color{Kind: ColorPalette8, Index: idx}
	}
	return Color{Kind: ColorPalette256, Index: idx}
}

// RGBColor returns a 24-bit truecolor value.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, RGB: color.RGBA{R: r, G: g, B: b, A: 255}}
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15),
// 216 color cube entries (16-231), and 24 grayscale steps (232-255).
var DefaultPalette = [256]color.RGBA{
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},

	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

// DefaultForeground is the built-in default text color, used when no theme
// override is present.
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the built-in default background color.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultCursorColor is the built-in cursor rendering color.
var DefaultCursorColor = color.RGBA{229, 229, 229, 255}

// Resolve converts c to a concrete RGBA using palette for indexed colors
// and fg/bg for ColorDefault. palette is typically DefaultPalette or a
// Theme-provided override.
func (c Color) Resolve(palette *[256]color.RGBA, fg bool, theme *Theme) color.RGBA {
	switch c.Kind {
	case ColorPalette8, ColorPalette256:
		if theme != nil {
			if rgba, ok := theme.paletteOverride(c.Index); ok {
				return rgba
			}
		}
		return palette[c.Index]
	case ColorRGB:
		return c.RGB
	default:
		if theme != nil {
			if fg {
				return theme.foregroundOr(DefaultForeground)
			}
			return theme.backgroundOr(DefaultBackground)
		}
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}
}

// hexColor formats an RGBA value as a "#rrggbb" string, the wire format
// Snapshot and CursorSnapshot use for colors.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Equal reports whether c and other denote the same color value.
func (c Color) Equal(other Color) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ColorPalette8, ColorPalette256:
		return c.Index == other.Index
	case ColorRGB:
		return c.RGB == other.RGB
	default:
		return true
	}
}
