package escpos

import (
	"bytes"
	"fmt"
	"strings"
)

// Default print width in characters for 58mm thermal paper.
const DefaultWidth = 32

// Document builds an ESC/POS byte stream for thermal printers.
// Methods chain and append to an internal buffer; Bytes returns the
// accumulated stream in emission order.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document with the given character width and
// emits the INIT token. Common widths: 32 for 58mm paper, 48 for 80mm.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.Raw(Init)
	return d
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Raw appends a command token verbatim.
func (d *Document) Raw(cmd []byte) *Document {
	d.buf.Write(cmd)
	return d
}

// Text appends UTF-8 text without a trailing line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	return d
}

// Line appends UTF-8 text followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Linef appends formatted text followed by a line feed.
func (d *Document) Linef(format string, args ...any) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Feed appends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Bold toggles bold text.
func (d *Document) Bold(on bool) *Document {
	if on {
		return d.Raw(BoldOn)
	}
	return d.Raw(BoldOff)
}

// DoubleHeight switches to double-height characters until Normal or Init.
func (d *Document) DoubleHeight() *Document {
	return d.Raw(DoubleHeightOn)
}

// DoubleWidth switches to double-width characters until Normal or Init.
func (d *Document) DoubleWidth() *Document {
	return d.Raw(DoubleWidthOn)
}

// Normal resets character size.
func (d *Document) Normal() *Document {
	return d.Raw(NormalSize)
}

// Left sets left alignment.
func (d *Document) Left() *Document {
	return d.Raw(AlignLeft)
}

// Center sets center alignment.
func (d *Document) Center() *Document {
	return d.Raw(AlignCenter)
}

// Right sets right alignment.
func (d *Document) Right() *Document {
	return d.Raw(AlignRight)
}

// Divider prints a full-width line of the given character.
func (d *Document) Divider(char byte) *Document {
	return d.Line(strings.Repeat(string(char), d.width))
}

// Cut emits the paper cut token.
func (d *Document) Cut() *Document {
	return d.Raw(CutPaper)
}

// Bytes returns the accumulated byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and re-emits INIT.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	return d.Raw(Init)
}

// Truncate shortens s to max runes, replacing the tail with "..." when
// it does not fit.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// PadRight pads s with spaces on the right to the given width.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft pads s with spaces on the left to the given width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
