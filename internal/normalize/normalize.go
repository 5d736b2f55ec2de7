// Package normalize canonicalizes raw text before boundary detection.
//
// Normalization never rejects input and is idempotent. It only changes the
// working buffer: every output rune keeps the source offset of the text it
// replaced, so the original characters are restored verbatim later.
package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
)

// folded lists the ASCII punctuation fullwidth forms are narrowed to.
const folded = `.?!"'()[]{},;:`

// Normalize returns the normalized working buffer for src.
func Normalize(src string) *buffer.Buffer {
	b := mapRunes(src)
	b = compose(b)
	b = collapseSpaces(b)
	return collapseEllipses(b)
}

// String normalizes text and returns the working text only.
func String(text string) string {
	return Normalize(text).String()
}

// Canonical returns the rune r is rewritten to by normalization, or r itself
// when normalization drops it.
func Canonical(r rune) rune {
	if c, keep := canonical(r); keep {
		return c
	}
	return r
}

// Dropped reports whether normalization removes r from the working text.
func Dropped(r rune) bool {
	_, keep := canonical(r)
	return !keep
}

func canonical(r rune) (rune, bool) {
	if sentinel.Reserved(r) {
		return sentinel.Escaped, true
	}
	switch r {
	case '\u2018', '\u2019', '\u201A', '\u201B', '\u2032':
		return '\'', true
	case '\u201C', '\u201D', '\u201E', '\u201F', '\u2033', '\u00AB', '\u00BB':
		return '"', true
	case '\t', '\v', '\f', '\u00A0', '\u202F', '\u205F', '\u3000':
		return ' ', true
	case '\r', '\u0085', '\u2028', '\u2029':
		return '\n', true
	case '\u200B', '\u200C', '\u200D', '\uFEFF', '\u00AD', '\u2060':
		return 0, false
	}
	if r >= '\u2000' && r <= '\u200A' {
		return ' ', true
	}
	if p := width.LookupRune(r); p.Kind() == width.EastAsianFullwidth {
		if n := p.Narrow(); n != 0 && strings.ContainsRune(folded, n) {
			return n, true
		}
	}
	return r, true
}

// mapRunes rewrites quote glyphs, exotic spaces and line separators, drops
// invisible format characters and escapes reserved runes.
func mapRunes(src string) *buffer.Buffer {
	b := buffer.NewBuilder(src, utf8.RuneCountInString(src))
	prevCR := false
	for i, r := range src {
		if r == '\n' && prevCR {
			prevCR = false
			continue
		}
		prevCR = r == '\r'
		if c, keep := canonical(r); keep {
			b.Add(c, i)
		}
	}
	return b.Buffer()
}

// compose applies canonical composition where a combining sequence folds
// into a single rune.
func compose(in *buffer.Buffer) *buffer.Buffer {
	text := in.String()
	if norm.NFC.IsNormalString(text) {
		return in
	}

	out := buffer.NewBuilder(in.Source(), in.Len())
	var it norm.Iter
	it.InitString(norm.NFC, text)
	idx := 0
	for !it.Done() {
		start := it.Pos()
		seg := it.Next()
		n := utf8.RuneCountInString(text[start:it.Pos()])
		if r, size := utf8.DecodeRune(seg); size == len(seg) && r != utf8.RuneError {
			out.Add(r, in.Offset(idx))
		} else {
			for k := range n {
				out.Add(in.At(idx+k), in.Offset(idx+k))
			}
		}
		idx += n
	}
	return out.Buffer()
}

// collapseSpaces merges runs of spaces into one.
func collapseSpaces(in *buffer.Buffer) *buffer.Buffer {
	out := buffer.NewBuilder(in.Source(), in.Len())
	for i, r := range in.Runes() {
		if r == ' ' && out.Len() > 0 && out.Last() == ' ' {
			continue
		}
		out.Add(r, in.Offset(i))
	}
	return out.Buffer()
}

// collapseEllipses turns runs of three or more periods, and the spaced
// form ". . .", into a single ellipsis.
func collapseEllipses(in *buffer.Buffer) *buffer.Buffer {
	runes := in.Runes()
	out := buffer.NewBuilder(in.Source(), in.Len())
	for i := 0; i < len(runes); {
		if runes[i] != '.' {
			out.Add(runes[i], in.Offset(i))
			i++
			continue
		}
		if end := dotRun(runes, i); end-i >= 3 {
			out.Add('…', in.Offset(i))
			i = end
			continue
		}
		if end := spacedDots(runes, i); end > i {
			out.Add('…', in.Offset(i))
			i = end
			continue
		}
		out.Add('.', in.Offset(i))
		i++
	}
	return out.Buffer()
}

func dotRun(runes []rune, i int) int {
	for i < len(runes) && runes[i] == '.' {
		i++
	}
	return i
}

// spacedDots returns the end of a ". . ." run starting at i, or i if none.
func spacedDots(runes []rune, i int) int {
	end, reps := i+1, 0
	for end+1 < len(runes) && runes[end] == ' ' && runes[end+1] == '.' {
		end += 2
		reps++
	}
	if reps < 2 {
		return i
	}
	return end
}
