// Package buffer holds the working text that flows between pipeline stages.
//
// Every rune in a Buffer remembers where in the source text the characters
// it stands for begin. Rune i covers Source()[Offset(i):Offset(i+1)], so a
// rune may stand for several source characters (a collapsed ellipsis, an
// extracted quotation) and every source byte belongs to exactly one rune.
package buffer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrLengthChanged is returned when a rewrite does not preserve the rune count.
var ErrLengthChanged = errors.New("rewrite changed buffer length")

// Buffer is an immutable working text with per-rune source offsets.
type Buffer struct {
	src   string
	runes []rune
	offs  []int
}

// FromSource returns a buffer mapping every rune of src to itself.
func FromSource(src string) *Buffer {
	b := NewBuilder(src, utf8.RuneCountInString(src))
	for i, r := range src {
		b.Add(r, i)
	}
	return b.Buffer()
}

// Source returns the original text.
func (b *Buffer) Source() string { return b.src }

// Len returns the number of runes.
func (b *Buffer) Len() int { return len(b.runes) }

// Runes returns the working runes. Callers must not modify the slice.
func (b *Buffer) Runes() []rune { return b.runes }

// At returns rune i.
func (b *Buffer) At(i int) rune { return b.runes[i] }

// String returns the working text.
func (b *Buffer) String() string { return string(b.runes) }

// Offset returns the source byte offset where rune i begins.
// Offset(Len()) is len(Source()).
func (b *Buffer) Offset(i int) int { return b.offs[i] }

// Chunk returns the source text rune i stands for.
func (b *Buffer) Chunk(i int) string { return b.src[b.offs[i]:b.offs[i+1]] }

// Rewrite returns a buffer holding text with the same offsets. The rune
// count of text must equal Len.
func (b *Buffer) Rewrite(text string) (*Buffer, error) {
	runes := []rune(text)
	if len(runes) != len(b.runes) {
		return nil, fmt.Errorf("%w: %d runes, want %d", ErrLengthChanged, len(runes), len(b.runes))
	}
	return &Buffer{src: b.src, runes: runes, offs: b.offs}, nil
}

// Builder assembles a Buffer whose length may differ from the source.
type Builder struct {
	src   string
	runes []rune
	offs  []int
}

// NewBuilder returns a builder for src with room for n runes.
func NewBuilder(src string, n int) *Builder {
	return &Builder{
		src:   src,
		runes: make([]rune, 0, n),
		offs:  make([]int, 0, n+1),
	}
}

// Add appends r, standing for source text starting at byte off. Offsets
// must not decrease.
func (b *Builder) Add(r rune, off int) {
	b.runes = append(b.runes, r)
	b.offs = append(b.offs, off)
}

// Len returns the number of runes added so far.
func (b *Builder) Len() int { return len(b.runes) }

// Last returns the most recently added rune, or utf8.RuneError when empty.
func (b *Builder) Last() rune {
	if len(b.runes) == 0 {
		return utf8.RuneError
	}
	return b.runes[len(b.runes)-1]
}

// Set replaces the most recently added rune, keeping its offset.
func (b *Builder) Set(r rune) {
	b.runes[len(b.runes)-1] = r
}

// Buffer finishes the build. The first rune is anchored at offset zero so
// that source text dropped before it is still covered.
func (b *Builder) Buffer() *Buffer {
	offs := append(b.offs, len(b.src))
	if len(b.runes) > 0 {
		offs[0] = 0
	}
	return &Buffer{src: b.src, runes: b.runes, offs: offs}
}
