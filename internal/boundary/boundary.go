// Package boundary decides which terminal marks end a sentence.
//
// Rules run in a fixed order over a buffer that has already been through the
// protectors and the span extractor. Generic protections come first so the
// confirmations and overrides after them can win.
package boundary

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/rule"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/lexicon"
)

// sentenceStart is what may follow the whitespace after a sentence end.
const sentenceStart = `(?:[\p{Lu}\p{Lt}\d]|` + sentinel.Tokens + `)`

var (
	collapse = rule.Map("collapse-punctuation", sentinel.Marks+`(?=`+sentinel.Marks+`)`, sentinel.Protect)

	// email matches from the start of a local part only.
	email = rule.Map("email", `(?<![\w.+-])[\w.+-]+@[\w-]+(?:\.[\w-]+)+`, sentinel.Protect)
	url   = rule.Map("url",
		`(?:https?://|www\.)`+sentinel.NonSpace+`*[^\s.,;:!?"')\]`+string(sentinel.Break)+`]`,
		sentinel.Protect, regexp2.IgnoreCase)
	domain = rule.Map("domain", `(?<=\S)\.(?=(?:com|org|net|edu|gov|io)\b)`, sentinel.Protect)

	lowercase = rule.Map("lowercase-continuation", sentinel.Marks+`(?=\s*\p{Ll})`, sentinel.Protect)

	confirm = rule.Map("confirm",
		sentinel.Marks+`(?=`+sentinel.Space+`*\z|`+sentinel.Space+`+`+sentenceStart+`)`,
		sentinel.Confirm)
	terminalSpan = rule.Map("terminal-span",
		`(?<=`+sentinel.TerminalTokens+`)\s(?=`+sentinel.Space+`*`+sentenceStart+`)`,
		toBreak)
	finalProtected = rule.Map("final-protected",
		sentinel.ProtectedMarks+`(?=`+sentinel.Space+`*\z)`,
		sentinel.Confirm)
	paragraph = rule.Map("paragraph", `(?<=\S[^\S\n]*)\n(?=[^\S\n]*\n)`, toBreak)

	override = rule.Map("override",
		sentinel.BoundaryMarks+`(?!`+sentinel.Space+`|\z)`,
		sentinel.Protect)
)

// Rules is the ordered boundary rule set. It is safe for concurrent use.
type Rules struct {
	chain rule.Chain
}

// New builds the rule set. Exclamation words from d, such as "Yahoo!", are
// protected along with URL and email shapes.
func New(d *lexicon.Dictionary) (*Rules, error) {
	chain := rule.Chain{collapse, email, url, domain}

	if words := d.Tokens(lexicon.Exclamation); len(words) > 0 {
		expr := `(?<=^|[\s(\["'])(?:` + rule.Alternation(words) + `)(?!\p{L})`
		r, err := rule.CompileMap("exclamation-words", expr, sentinel.Protect, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("boundary: %w", err)
		}
		chain = append(chain, r)
	}

	chain = append(chain, lowercase, confirm, terminalSpan, finalProtected, paragraph, override)
	return &Rules{chain: chain}, nil
}

// Apply marks sentence boundaries in b.
func (r *Rules) Apply(b *buffer.Buffer) (*buffer.Buffer, error) {
	return r.chain.Run(b)
}

// Names lists the rules in the order they run.
func (r *Rules) Names() []string {
	names := make([]string, len(r.chain))
	for i, rl := range r.chain {
		names[i] = rl.Name
	}
	return names
}

func toBreak(rune) rune { return sentinel.Break }
