// Package vtterm provides a headless VT100/ANSI terminal core for embedding
// in a graphical host.
//
// It ingests a byte stream produced by a pseudo-terminal, maintains the
// resulting two-dimensional cell grid (with scrollback), and exposes a
// stable snapshot for a frame-driven renderer plus a selection facility
// that extracts plain text from the grid. Rendering, font metrics, keyboard
// encoding, clipboard I/O, and PTY/transport plumbing are left to the host;
// this package only maintains the logical screen state.
//
// # Quick start
//
//	term := vtterm.New(vtterm.WithSize(80, 24))
//	if err := term.Open(); err != nil {
//		log.Fatal(err)
//	}
//	defer term.Dispose()
//
//	term.Write([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(term.String()) // "Hello World!", then 23 empty rows
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Parser]: a byte-oriented VT state machine that turns raw bytes into
//     actions and dispatches them to a [Handler]
//   - [Terminal]: the façade; implements [Handler], owns the primary and
//     alternate [Buffer], the [Cursor], and the [Selection] engine
//   - [Buffer]: a 2D grid of [Cell] values with scrollback and scroll-region
//     support
//   - [Selection]: coordinate-to-text extraction over the active grid
//
// # Dual buffers
//
// Terminal maintains two buffers:
//
//   - Primary buffer: normal mode, feeds scrollback
//   - Alternate buffer: used by full-screen apps (vim, less, htop); cleared
//     on entry, never feeds scrollback
//
// Applications switch buffers via CSI ?1049h / ?1049l. Check which is
// active with [Terminal.IsAlternateScreen].
//
// # Renderer contract
//
// A renderer polls the terminal once per frame: [Terminal.Dimensions],
// [Terminal.LineAt], [Terminal.CursorSnapshot], and [Terminal.ConsumeDirty]
// are the only calls it needs. None of them changes the grid or cursor;
// ConsumeDirty clears the dirty-row set it returns.
package vtterm
