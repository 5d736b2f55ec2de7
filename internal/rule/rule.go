// Package rule provides pattern rules and ordered rule chains.
//
// A Rule is a pure text-to-text transformation: a regular expression with
// lookaround support plus a replacement policy. Rules used inside the
// boundary pipeline replace each match with text of the same rune count, so
// the working buffer keeps its mapping to the source.
package rule

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/jamesainslie/go-sbd/internal/buffer"
)

// Rule is a named pattern and replacement.
type Rule struct {
	Name string

	re   *regexp2.Regexp
	repl string
	eval regexp2.MatchEvaluator
	fn   func(string) (string, error)
}

// Compile builds a rule that replaces every match with repl. Group
// references in repl use the $1 syntax.
func Compile(name, expr, repl string, opts regexp2.RegexOptions) (Rule, error) {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %s: %w", name, err)
	}
	return Rule{Name: name, re: re, repl: repl}, nil
}

// CompileMap builds a rule that rewrites each rune of every match with fn.
func CompileMap(name, expr string, fn func(rune) rune, opts regexp2.RegexOptions) (Rule, error) {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %s: %w", name, err)
	}
	return Rule{Name: name, re: re, eval: mapEvaluator(fn)}, nil
}

// Replace is like Compile but panics on an invalid expression.
func Replace(name, expr, repl string, opts ...regexp2.RegexOptions) Rule {
	r, err := Compile(name, expr, repl, join(opts))
	if err != nil {
		panic(err)
	}
	return r
}

// Map is like CompileMap but panics on an invalid expression.
func Map(name, expr string, fn func(rune) rune, opts ...regexp2.RegexOptions) Rule {
	r, err := CompileMap(name, expr, fn, join(opts))
	if err != nil {
		panic(err)
	}
	return r
}

// Func wraps a hand-written transformation so it can sit in a Chain.
func Func(name string, fn func(string) (string, error)) Rule {
	return Rule{Name: name, fn: fn}
}

// Apply runs the rule over text.
func (r Rule) Apply(text string) (string, error) {
	switch {
	case r.fn != nil:
		return r.fn(text)
	case r.eval != nil:
		return r.re.ReplaceFunc(text, r.eval, -1, -1)
	default:
		return r.re.Replace(text, r.repl, -1, -1)
	}
}

// Chain is an ordered list of rules applied one after another.
type Chain []Rule

// Apply runs every rule in order, feeding each the previous output.
func (c Chain) Apply(text string) (string, error) {
	var err error
	for _, r := range c {
		text, err = r.Apply(text)
		if err != nil {
			return "", fmt.Errorf("rule %s: %w", r.Name, err)
		}
	}
	return text, nil
}

// Run applies the chain to a buffer, requiring the rune count to survive.
func (c Chain) Run(b *buffer.Buffer) (*buffer.Buffer, error) {
	text, err := c.Apply(b.String())
	if err != nil {
		return nil, err
	}
	return b.Rewrite(text)
}

func mapEvaluator(fn func(rune) rune) regexp2.MatchEvaluator {
	return func(m regexp2.Match) string {
		s := m.String()
		out := make([]rune, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			out = append(out, fn(r))
		}
		return string(out)
	}
}

func join(opts []regexp2.RegexOptions) regexp2.RegexOptions {
	var o regexp2.RegexOptions
	for _, opt := range opts {
		o |= opt
	}
	return o
}

// Alternation joins escaped literal tokens into a regular expression
// alternation, longest first so a token never loses to its own prefix.
func Alternation(tokens []string) string {
	sorted := slices.Clone(tokens)
	slices.SortFunc(sorted, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	escaped := make([]string, len(sorted))
	for i, tok := range sorted {
		escaped[i] = regexp2.Escape(tok)
	}
	return strings.Join(escaped, "|")
}
