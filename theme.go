package vtterm

import "image/color"

// Theme overrides the built-in default colors and the 16 standard ANSI
// palette slots. A zero-value field means "use the built-in default",
// so a host only needs to set the colors it actually wants to change.
type Theme struct {
	Foreground        *color.RGBA
	Background        *color.RGBA
	Cursor            *color.RGBA
	CursorAccent      *color.RGBA
	SelectionBackground *color.RGBA
	SelectionForeground *color.RGBA
	// ANSI holds overrides for palette slots 0-15 (black, red, green,
	// yellow, blue, magenta, cyan, white, and their bright variants).
	// A nil element falls back to DefaultPalette.
	ANSI [16]*color.RGBA
}

func (th *Theme) paletteOverride(index uint8) (color.RGBA, bool) {
	if th == nil || index >= 16 || th.ANSI[index] == nil {
		return color.RGBA{}, false
	}
	return *th.ANSI[index], true
}

func (th *Theme) foregroundOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.Foreground != nil {
		return *th.Foreground
	}
	return fallback
}

func (th *Theme) backgroundOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.Background != nil {
		return *th.Background
	}
	return fallback
}

func (th *Theme) cursorOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.Cursor != nil {
		return *th.Cursor
	}
	return fallback
}

func (th *Theme) cursorAccentOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.CursorAccent != nil {
		return *th.CursorAccent
	}
	return fallback
}

func (th *Theme) selectionBackgroundOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.SelectionBackground != nil {
		return *th.SelectionBackground
	}
	return fallback
}

func (th *Theme) selectionForegroundOr(fallback color.RGBA) color.RGBA {
	if th != nil && th.SelectionForeground != nil {
		return *th.SelectionForeground
	}
	return fallback
}
