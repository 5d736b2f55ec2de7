// Package numeric protects periods inside numbers and list markers.
//
// Numeric rules run first. List detection only sees periods the numeric
// rules left alone or protected, and it additionally turns the whitespace in
// front of each detected list item into a sentence break.
package numeric

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/rule"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
)

var numbers = rule.Chain{
	rule.Map("period-before-number", `\.(?=\d)`, sentinel.Protect),
	rule.Map("number-after-period-before-letter", `(?<=\d)\.(?=\S)`, sentinel.Protect),
	rule.Map("line-start-number", `(?<=^\d{1,2})\.(?=(?:\s\S)|\))`, sentinel.Protect, regexp2.Multiline),
}

// start is the context a list marker must follow.
const start = `(?<=^|` + sentinel.Space + `)`

// bullets may precede a numbered marker, directly or after one space.
const bullets = "-⁃•"

// kind describes one list style. The first group of pattern captures the
// ordinal; a period after it, if any, is the marker's period.
type kind struct {
	name    string
	pattern *regexp2.Regexp
	value   func(string) (int, bool)
	period  bool
}

var kinds = []kind{
	{
		name:    "alphabetical",
		pattern: regexp2.MustCompile(start+`([a-z])`+sentinel.AnyPeriod+`(?=\s)`, regexp2.None),
		value:   letterValue,
		period:  true,
	},
	{
		name:    "alphabetical-parens",
		pattern: regexp2.MustCompile(`(?<=^|[\s\(])([a-z])(?=\))`, regexp2.None),
		value:   letterValue,
	},
	{
		name:    "roman",
		pattern: regexp2.MustCompile(start+`([ivx]+)`+sentinel.AnyPeriod+`(?=\s)`, regexp2.None),
		value:   romanValue,
		period:  true,
	},
	{
		name:    "roman-parens",
		pattern: regexp2.MustCompile(`(?<=^|[\s\(])([ivx]+)(?=\))`, regexp2.None),
		value:   romanValue,
	},
	{
		name:    "numbered",
		pattern: regexp2.MustCompile(`(?<=(?:^|`+sentinel.Space+`)[`+bullets+`]?)(\d{1,2})`+sentinel.AnyPeriod+`(?=\s|\))`, regexp2.None),
		value:   numberValue,
		period:  true,
	},
	{
		name:    "numbered-parens",
		pattern: regexp2.MustCompile(`(?<=^|[\s\(])(\d{1,2})(?=\)\s)`, regexp2.None),
		value:   numberValue,
	},
}

// Protector protects numeric and list-marker periods. It is safe for
// concurrent use.
type Protector struct {
	lists bool
}

// New returns a protector. When lists is false only numeric rules run.
func New(lists bool) *Protector {
	return &Protector{lists: lists}
}

// Apply protects numeric and list periods in b.
func (p *Protector) Apply(b *buffer.Buffer) (*buffer.Buffer, error) {
	b, err := numbers.Run(b)
	if err != nil {
		return nil, err
	}
	if !p.lists {
		return b, nil
	}

	runes := append([]rune(nil), b.Runes()...)
	for _, k := range kinds {
		if err := k.apply(runes); err != nil {
			return nil, fmt.Errorf("%s list: %w", k.name, err)
		}
	}
	return b.Rewrite(string(runes))
}

type marker struct {
	start int // first rune of the marker, including an opening paren or bullet
	value int
	dot   int // index of the marker period, or -1
}

func (k kind) apply(runes []rune) error {
	markers, err := k.find(runes)
	if err != nil {
		return err
	}
	for i, m := range markers {
		prev := i > 0 && markers[i-1].value == m.value-1
		next := i+1 < len(markers) && markers[i+1].value == m.value+1
		if !prev && !next {
			continue
		}
		if m.dot >= 0 {
			runes[m.dot] = sentinel.ProtectedPeriod
		}
		if !afterFor(runes, m.start) {
			insertBreak(runes, m.start)
		}
	}
	return nil
}

func (k kind) find(runes []rune) ([]marker, error) {
	var markers []marker
	m, err := k.pattern.FindRunesMatch(runes)
	for ; m != nil && err == nil; m, err = k.pattern.FindNextMatch(m) {
		g := m.GroupByNumber(1)
		v, ok := k.value(g.String())
		if !ok {
			continue
		}
		mk := marker{start: g.Index, value: v, dot: -1}
		if k.period {
			mk.dot = g.Index + g.Length
		}
		switch {
		case mk.start > 0 && strings.ContainsRune("("+bullets, runes[mk.start-1]):
			mk.start--
		case mk.start > 1 && runes[mk.start-1] == ' ' && strings.ContainsRune(bullets, runes[mk.start-2]) &&
			(mk.start == 2 || isSpace(runes[mk.start-3])):
			mk.start -= 2
		}
		markers = append(markers, mk)
	}
	return markers, err
}

// insertBreak turns the whitespace before a list item into a break, unless
// the item opens the text or follows a very short word.
func insertBreak(runes []rune, at int) {
	if at < 1 || !unicode.IsSpace(runes[at-1]) {
		return
	}
	if runes[at-1] == '\n' || (at >= 3 && !isSpace(runes[at-2]) && !isSpace(runes[at-3])) {
		runes[at-1] = sentinel.Break
	}
}

// afterFor reports whether the marker follows the word "for", as in
// "for 3. the rest", which reads as prose rather than a list.
func afterFor(runes []rune, at int) bool {
	if at < 4 {
		return false
	}
	return unicode.IsSpace(runes[at-1]) && strings.EqualFold(string(runes[at-4:at-1]), "for") &&
		(at < 5 || !unicode.IsLetter(runes[at-5]))
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == sentinel.Break
}

func letterValue(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	return int(s[0] - 'a'), true
}

var romans = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6, "vii": 7, "viii": 8, "ix": 9, "x": 10,
	"xi": 11, "xii": 12, "xiii": 13, "xiv": 14, "xv": 15, "xvi": 16, "xvii": 17, "xviii": 18,
	"xix": 19, "xx": 20,
}

func romanValue(s string) (int, bool) {
	v, ok := romans[s]
	return v, ok
}

func numberValue(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}
