package term

import (
	"github.com/fatih/color"

	"github.com/charliek/ktail/internal/domain"
)

// prefixPalette is rotated through as new sources appear in the stream.
var prefixPalette = []*color.Color{
	color.New(color.FgCyan, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgMagenta, color.Bold),
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgBlue, color.Bold),
	color.New(color.FgRed, color.Bold),
}

// Printer assigns each source a stable color for its line prefix. Assignment
// order follows first appearance in the stream.
type Printer struct {
	colors     map[string]*color.Color
	colorIndex int
}

// NewPrinter creates a new Printer
func NewPrinter() *Printer {
	return &Printer{
		colors: make(map[string]*color.Color),
	}
}

// Prefix returns the colored source tag for a message.
func (p *Printer) Prefix(msg domain.LogMessage) string {
	return p.colorFor(msg.SourceID).Sprint(msg.Prefix())
}

func (p *Printer) colorFor(sourceID string) *color.Color {
	c, ok := p.colors[sourceID]
	if !ok {
		c = prefixPalette[p.colorIndex%len(prefixPalette)]
		p.colors[sourceID] = c
		p.colorIndex++
	}
	return c
}
