package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	SizeNormal = 0x00
	SizeDouble = 0x11 // Double width + double height
	SizeWide   = 0x10
	SizeTall   = 0x01
)

// Builder accumulates an ESC/POS byte stream for thermal receipt printers.
// Width is the print width in characters: 32 for 58mm paper, 48 for 80mm.
type Builder struct {
	buf   bytes.Buffer
	width int
}

// NewBuilder creates an initialized ESC/POS builder with the given
// character width.
func NewBuilder(charWidth int) *Builder {
	if charWidth <= 0 {
		charWidth = 32
	}
	b := &Builder{width: charWidth}
	b.buf.Write([]byte{esc, '@'})
	return b
}

// Width returns the print width in characters.
func (b *Builder) Width() int {
	return b.width
}

// Feed emits n line feeds.
func (b *Builder) Feed(n int) *Builder {
	for i := 0; i < n; i++ {
		b.buf.WriteByte(lf)
	}
	return b
}

// Align sets text alignment: AlignLeft, AlignCenter or AlignRight.
func (b *Builder) Align(a int) *Builder {
	b.buf.Write([]byte{esc, 'a', byte(a)})
	return b
}

// Bold enables or disables emphasized text.
func (b *Builder) Bold(on bool) *Builder {
	v := byte(0)
	if on {
		v = 1
	}
	b.buf.Write([]byte{esc, 'E', v})
	return b
}

// Size sets the character size: SizeNormal, SizeDouble, SizeWide or SizeTall.
func (b *Builder) Size(s byte) *Builder {
	b.buf.Write([]byte{gs, '!', s})
	return b
}

// Line writes a line of text followed by a line feed.
func (b *Builder) Line(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(lf)
	return b
}

// Linef writes a formatted line followed by a line feed.
func (b *Builder) Linef(format string, args ...interface{}) *Builder {
	b.buf.WriteString(fmt.Sprintf(format, args...))
	b.buf.WriteByte(lf)
	return b
}

// Rule prints a full-width separator of the given character.
func (b *Builder) Rule(char byte) *Builder {
	b.buf.WriteString(strings.Repeat(string(char), b.width))
	b.buf.WriteByte(lf)
	return b
}

// TwoCol prints a left-aligned label and a right-aligned value on one line.
func (b *Builder) TwoCol(label, value string) *Builder {
	pad := b.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	b.buf.WriteString(label)
	b.buf.WriteString(strings.Repeat(" ", pad))
	b.buf.WriteString(value)
	b.buf.WriteByte(lf)
	return b
}

// ItemLine prints "qty x name" with a right-aligned line total.
func (b *Builder) ItemLine(qty int, name, total string) *Builder {
	return b.TwoCol(fmt.Sprintf("%dx %s", qty, name), total)
}

// Cut sends a full paper cut.
func (b *Builder) Cut() *Builder {
	b.buf.Write([]byte{gs, 'V', 0x00})
	return b
}

// Bytes returns the accumulated ESC/POS stream.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}
