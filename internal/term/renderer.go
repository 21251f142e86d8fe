// Package term owns the raw-mode terminal: line printing, the pinned status
// footer, and single-keystroke input for the live view.
package term

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/charliek/ktail/internal/domain"
)

// defaultWidth is used when the terminal width cannot be determined
const defaultWidth = 80

// TerminalFd returns f's descriptor when it is a terminal, -1 otherwise.
// A renderer built on -1 skips raw-mode handling, which keeps piped output
// sane.
func TerminalFd(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return -1
	}
	return fd
}

// clearLine moves to column 0 and erases the current line
const clearLine = "\r\x1b[2K"

var footerStyle = lipgloss.NewStyle().Reverse(true)

// Option configures optional Renderer behavior.
type Option func(*Renderer)

// WithWidth overrides terminal width detection.
func WithWidth(fn func() int) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.width = fn
		}
	}
}

// Renderer writes the live log view: each message is printed as its own line
// and the footer is redrawn immediately after, so the footer stays the last
// visible line. Raw mode is entered with EnableRaw and must be paired with
// Restore on every exit path.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	fd      int // -1 when out is not a terminal
	saved   *term.State
	width   func() int
	printer *Printer
}

// NewRenderer creates a renderer for the given writer. fd is the terminal
// file descriptor backing the writer, or -1 when the writer is not a
// terminal (raw-mode handling then becomes a no-op).
func NewRenderer(out io.Writer, fd int, opts ...Option) *Renderer {
	r := &Renderer{
		out:     out,
		fd:      fd,
		printer: NewPrinter(),
	}
	r.width = r.terminalWidth
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) terminalWidth() int {
	if r.fd < 0 {
		return defaultWidth
	}
	w, _, err := term.GetSize(r.fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// EnableRaw switches the terminal into raw mode so keystrokes arrive
// immediately and unprocessed.
func (r *Renderer) EnableRaw() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fd < 0 || r.saved != nil {
		return nil
	}
	saved, err := term.MakeRaw(r.fd)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRawMode, err)
	}
	r.saved = saved
	return nil
}

// Restore returns the terminal to its original mode. Safe to call when raw
// mode was never entered, and idempotent.
func (r *Renderer) Restore() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fd < 0 || r.saved == nil {
		return nil
	}
	saved := r.saved
	r.saved = nil
	return term.Restore(r.fd, saved)
}

// PrintLine writes one log message as its own line, erasing whatever the
// footer left on the current row first. Callers redraw the footer afterwards.
func (r *Renderer) PrintLine(msg domain.LogMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s%s %s\r\n", clearLine, r.printer.Prefix(msg), msg.Text)
}

// DrawFooter pads the status to the current terminal width and pins it to
// the bottom line without a trailing newline. Width is recomputed on every
// call; the terminal may have been resized since the last draw.
func (r *Renderer) DrawFooter(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width := r.width()
	text := []rune(" " + status)
	if len(text) > width {
		text = text[:width]
	}
	padded := string(text)
	for len([]rune(padded)) < width {
		padded += " "
	}
	fmt.Fprintf(r.out, "%s%s", clearLine, footerStyle.Render(padded))
}

// ClearFooter erases the footer line, leaving the cursor at column 0.
func (r *Renderer) ClearFooter() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.out, clearLine)
}
