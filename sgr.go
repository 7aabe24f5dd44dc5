package vtterm

// applySGR applies a Select Graphic Rendition sequence to the cursor's
// current attribute template, which every subsequent Print call copies
// into the cells it writes. params is consumed left to right since 256-
// color and truecolor forms (38/48;5;n and 38/48;2;r;g;b) absorb a
// variable number of following entries.
func (t *Terminal) applySGR(params []int) {
	if len(params) == 0 {
		t.cursor.Attrs = DefaultAttributes()
		return
	}

	attrs := t.cursor.Attrs
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			attrs = DefaultAttributes()
		case p == 1:
			attrs = attrs.WithFlag(AttrBold)
		case p == 2:
			attrs = attrs.WithFlag(AttrDim)
		case p == 3:
			attrs = attrs.WithFlag(AttrItalic)
		case p == 4:
			attrs = attrs.WithFlag(AttrUnderline)
		case p == 5 || p == 6:
			attrs = attrs.WithFlag(AttrBlink)
		case p == 7:
			attrs = attrs.WithFlag(AttrInverse)
		case p == 8:
			attrs = attrs.WithFlag(AttrInvisible)
		case p == 9:
			attrs = attrs.WithFlag(AttrStrikethrough)
		case p == 22:
			attrs = attrs.WithoutFlag(AttrBold).WithoutFlag(AttrDim)
		case p == 23:
			attrs = attrs.WithoutFlag(AttrItalic)
		case p == 24:
			attrs = attrs.WithoutFlag(AttrUnderline)
		case p == 25:
			attrs = attrs.WithoutFlag(AttrBlink)
		case p == 27:
			attrs = attrs.WithoutFlag(AttrInverse)
		case p == 28:
			attrs = attrs.WithoutFlag(AttrInvisible)
		case p == 29:
			attrs = attrs.WithoutFlag(AttrStrikethrough)
		case p >= 30 && p <= 37:
			attrs.Fg = PaletteColor(uint8(p - 30))
		case p == 38:
			var consumed int
			attrs.Fg, consumed = parseExtendedColor(params[i+1:])
			i += consumed
		case p == 39:
			attrs.Fg = DefaultColor()
		case p >= 40 && p <= 47:
			attrs.Bg = PaletteColor(uint8(p - 40))
		case p == 48:
			var consumed int
			attrs.Bg, consumed = parseExtendedColor(params[i+1:])
			i += consumed
		case p == 49:
			attrs.Bg = DefaultColor()
		case p >= 90 && p <= 97:
			attrs.Fg = PaletteColor(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			attrs.Bg = PaletteColor(uint8(p-100) + 8)
		}
	}
	t.cursor.Attrs = attrs
}

// parseExtendedColor parses the tail of a 38/48 sequence (everything after
// the 38 or 48 itself): either "5;n" (256-color) or "2;r;g;b" (truecolor).
// Returns the resolved color and how many entries of rest were consumed.
func parseExtendedColor(rest []int) (Color, int) {
	if len(rest) == 0 {
		return DefaultColor(), 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return DefaultColor(), len(rest)
		}
		return PaletteColor(uint8(rest[1])), 2
	case 2:
		if len(rest) < 4 {
			return DefaultColor(), len(rest)
		}
		return RGBColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4
	default:
		return DefaultColor(), len(rest)
	}
}
