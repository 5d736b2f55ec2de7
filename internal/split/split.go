// Package split cuts a marked buffer into segments and restores each one to
// the exact source text it came from.
package split

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/normalize"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/internal/span"
)

// ErrInconsistent is returned when a sentinel or token does not match the
// source text it stands for.
var ErrInconsistent = errors.New("inconsistent restoration")

// Segment is one restored sentence with its byte range in the source.
type Segment struct {
	Text       string
	Start, End int
}

// Cuts returns the rune indices where segments end, excluding the end of the
// buffer. A segment ends after a boundary sentinel and the whitespace that
// follows it.
func Cuts(b *buffer.Buffer) []int {
	var (
		cuts []int
		prev int
		n    = b.Len()
	)
	for i := 0; i < n; i++ {
		if !sentinel.IsBoundary(b.At(i)) {
			continue
		}
		cut := i + 1
		for cut < n && isSpace(b.At(cut)) {
			cut++
		}
		if cut > prev && cut < n {
			cuts = append(cuts, cut)
			prev = cut
		}
		i = cut - 1
	}
	return cuts
}

// Split cuts b at its boundaries and restores every segment. The segments
// concatenate to b.Source().
func Split(b *buffer.Buffer, table span.Table) ([]Segment, error) {
	src := b.Source()
	if b.Len() == 0 {
		if src == "" {
			return nil, nil
		}
		return []Segment{{Text: src, Start: 0, End: len(src)}}, nil
	}

	if err := checkTable(b, table); err != nil {
		return nil, err
	}

	cuts := append(Cuts(b), b.Len())
	segments := make([]Segment, 0, len(cuts))
	from := 0
	for _, to := range cuts {
		text, err := Restore(b, table, from, to)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Segment{Text: text, Start: b.Offset(from), End: b.Offset(to)})
		from = to
	}

	var total int
	for _, s := range segments {
		total += len(s.Text)
	}
	if total != len(src) {
		return nil, fmt.Errorf("%w: segments cover %d bytes, source has %d", ErrInconsistent, total, len(src))
	}
	return segments, nil
}

// Restore returns the source text behind runes [from, to) of b, checking that
// each sentinel and token stands for the text it replaced.
func Restore(b *buffer.Buffer, table span.Table, from, to int) (string, error) {
	var sb strings.Builder
	sb.Grow(b.Offset(to) - b.Offset(from))
	for i := from; i < to; i++ {
		chunk := b.Chunk(i)
		if err := check(b.At(i), chunk, table); err != nil {
			return "", fmt.Errorf("rune %d (%s): %w", i, sentinel.Visible(string(b.At(i))), err)
		}
		sb.WriteString(chunk)
	}
	return sb.String(), nil
}

// Complete reports whether b ends with a sentence boundary: a confirmed mark
// or a span ending in terminal punctuation, ignoring trailing whitespace.
func Complete(b *buffer.Buffer) bool {
	for i := b.Len() - 1; i >= 0; i-- {
		r := b.At(i)
		if isSpace(r) {
			continue
		}
		if _, terminal, ok := sentinel.TokenIndex(r); ok {
			return terminal
		}
		return r >= sentinel.BoundaryPeriod && r <= sentinel.BoundaryEllipsis
	}
	return false
}

func check(r rune, chunk string, table span.Table) error {
	chunk = strings.TrimLeftFunc(chunk, normalize.Dropped)
	if chunk == "" {
		return fmt.Errorf("%w: empty source chunk", ErrInconsistent)
	}
	first, _ := utf8.DecodeRuneInString(chunk)

	switch {
	case sentinel.IsProtected(r) || (sentinel.IsBoundary(r) && r != sentinel.Break):
		mark, got := sentinel.Mark(r), normalize.Canonical(first)
		if got != mark && !(mark == '…' && got == '.') {
			return fmt.Errorf("%w: mark %q restored from %q", ErrInconsistent, mark, chunk)
		}
	case r == sentinel.Break:
		if !unicode.IsSpace(first) {
			return fmt.Errorf("%w: break restored from %q", ErrInconsistent, chunk)
		}
	case r == sentinel.Escaped:
		if !sentinel.Reserved(first) {
			return fmt.Errorf("%w: escape restored from %q", ErrInconsistent, chunk)
		}
	case sentinel.IsToken(r):
		idx, _, _ := sentinel.TokenIndex(r)
		e, ok := table.Lookup(idx)
		if !ok {
			return fmt.Errorf("%w: token %d missing from table", ErrInconsistent, idx)
		}
		if !strings.HasSuffix(e.Text, chunk) {
			return fmt.Errorf("%w: token %d restored from %q, table has %q", ErrInconsistent, idx, chunk, e.Text)
		}
	}
	return nil
}

// checkTable verifies every table entry is referenced by exactly one token.
func checkTable(b *buffer.Buffer, table span.Table) error {
	seen := make([]int, len(table))
	for _, r := range b.Runes() {
		idx, _, ok := sentinel.TokenIndex(r)
		if !ok {
			continue
		}
		if idx >= len(table) {
			return fmt.Errorf("%w: token %d missing from table", ErrInconsistent, idx)
		}
		seen[idx]++
	}
	for i, n := range seen {
		if n != 1 {
			return fmt.Errorf("%w: table entry %d referenced %d times", ErrInconsistent, i, n)
		}
	}
	return nil
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == sentinel.Break
}
