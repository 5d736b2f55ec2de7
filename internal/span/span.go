// Package span replaces quoted and bracketed spans with single token runes so
// that punctuation inside them cannot end the enclosing sentence.
//
// The scanner is a pushdown automaton over delimiter frames. Only outermost
// spans become tokens; whatever they contain is recovered from the source
// text when segments are restored.
package span

import (
	"strings"
	"unicode"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
)

// maxRestarts bounds how many unclosed single quotes are demoted to
// apostrophes in one buffer.
const maxRestarts = 64

// Delim identifies the delimiter pair of a frame.
type Delim uint8

const (
	Double Delim = iota
	Single
	Paren
	Bracket
	Brace
)

func (d Delim) String() string {
	switch d {
	case Double:
		return "double"
	case Single:
		return "single"
	case Paren:
		return "paren"
	case Bracket:
		return "bracket"
	case Brace:
		return "brace"
	}
	return "unknown"
}

var (
	openers = map[rune]Delim{'(': Paren, '[': Bracket, '{': Brace}
	closers = map[rune]Delim{')': Paren, ']': Bracket, '}': Brace}
)

// Entry is one extracted span.
type Entry struct {
	Index int
	// Start and End are byte offsets of the span in the source text.
	Start, End int
	Text       string
	Delim      Delim
	// Terminal is set when the span's content ends in terminal punctuation.
	Terminal bool
	// Open is set when the span was never closed and runs to the end.
	Open bool
}

// Table holds the spans extracted from one buffer, indexed by token.
type Table []Entry

// Lookup returns entry i.
func (t Table) Lookup(i int) (Entry, bool) {
	if i < 0 || i >= len(t) {
		return Entry{}, false
	}
	return t[i], true
}

type frame struct {
	delim Delim
	at    int
}

type extent struct {
	start, end int
	delim      Delim
	open       bool
}

// Extract replaces every outermost span in b with a token rune. The returned
// buffer maps each token back to the source range of its span.
func Extract(b *buffer.Buffer) (*buffer.Buffer, Table) {
	runes := b.Runes()
	spans := scan(runes)
	if len(spans) == 0 {
		return b, nil
	}
	if len(spans) > sentinel.MaxTokens {
		spans = spans[:sentinel.MaxTokens]
	}

	table := make(Table, 0, len(spans))
	out := buffer.NewBuilder(b.Source(), b.Len())
	next := 0
	for i, s := range spans {
		for ; next < s.start; next++ {
			out.Add(runes[next], b.Offset(next))
		}
		e := Entry{
			Index:    i,
			Start:    b.Offset(s.start),
			End:      b.Offset(s.end),
			Delim:    s.delim,
			Terminal: terminal(runes[s.start:s.end]),
			Open:     s.open,
		}
		e.Text = b.Source()[e.Start:e.End]
		table = append(table, e)
		out.Add(sentinel.Token(i, e.Terminal), e.Start)
		next = s.end
	}
	for ; next < len(runes); next++ {
		out.Add(runes[next], b.Offset(next))
	}
	return out.Buffer(), table
}

func scan(runes []rune) []extent {
	var (
		spans    []extent
		stack    []frame
		demoted  = map[int]bool{}
		restarts int
	)

	for i := 0; i <= len(runes); i++ {
		if i == len(runes) {
			if len(stack) == 0 {
				break
			}
			bottom := stack[0]
			if bottom.delim == Single && restarts < maxRestarts {
				restarts++
				demoted[bottom.at] = true
				stack = stack[:0]
				i = bottom.at
				continue
			}
			spans = append(spans, extent{start: bottom.at, end: len(runes), delim: bottom.delim, open: true})
			break
		}

		r := runes[i]
		switch {
		case r == '"':
			if depth := find(stack, Double); depth >= 0 && (stack[len(stack)-1].delim == Double || !wordRune(at(runes, i+1))) {
				stack = closeFrame(stack, depth, i, &spans)
			} else {
				stack = append(stack, frame{Double, i})
			}

		case r == '\'':
			if demoted[i] {
				continue
			}
			if depth := find(stack, Single); depth >= 0 && !isSpace(at(runes, i-1)) && !wordRune(at(runes, i+1)) {
				stack = closeFrame(stack, depth, i, &spans)
			} else if opensSingle(runes, i) {
				stack = append(stack, frame{Single, i})
			}

		default:
			if d, ok := openers[r]; ok {
				stack = append(stack, frame{d, i})
			} else if d, ok := closers[r]; ok {
				if depth := find(stack, d); depth >= 0 {
					stack = closeFrame(stack, depth, i, &spans)
				}
			}
		}
	}
	return spans
}

// closeFrame pops the stack down to depth, abandoning inner frames, and
// records a span when the outermost frame closes at i.
func closeFrame(stack []frame, depth, i int, spans *[]extent) []frame {
	if depth == 0 {
		*spans = append(*spans, extent{start: stack[0].at, end: i + 1, delim: stack[0].delim})
	}
	return stack[:depth]
}

func find(stack []frame, d Delim) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].delim == d {
			return i
		}
	}
	return -1
}

// opensSingle reports whether the apostrophe at i reads as an opening quote:
// it starts a word and follows whitespace, an opener or a double quote.
func opensSingle(runes []rune, i int) bool {
	prev := at(runes, i-1)
	if _, opener := openers[prev]; prev != 0 && !opener && prev != '"' && !isSpace(prev) {
		return false
	}
	return unicode.IsLetter(at(runes, i+1))
}

// terminal reports whether the content of a span ends in terminal
// punctuation, ignoring closing delimiters and trailing whitespace. An
// elision such as "[...]" at the end does not count.
func terminal(content []rune) bool {
	for i := len(content) - 1; i > 0; i-- {
		r := content[i]
		if _, closer := closers[r]; closer && elided(content[:i+1]) {
			return false
		}
		if isSpace(r) || strings.ContainsRune(`"')]}`, r) {
			continue
		}
		return sentinel.IsTerminal(r)
	}
	return false
}

// elided reports whether s ends in a bracketed run of periods or ellipses.
func elided(s []rune) bool {
	end := len(s) - 1
	d := closers[s[end]]
	i := end - 1
	for i >= 0 && strings.ContainsRune(".…", sentinel.Mark(s[i])) {
		i--
	}
	if i < 0 || i == end-1 {
		return false
	}
	open, ok := openers[s[i]]
	return ok && open == d
}

func at(runes []rune, i int) rune {
	if i < 0 || i >= len(runes) {
		return 0
	}
	return runes[i]
}

func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == sentinel.Break
}
