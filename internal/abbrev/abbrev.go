// Package abbrev protects periods that terminate known abbreviations.
package abbrev

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/rule"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/lexicon"
)

// before is the context a dictionary abbreviation must follow.
const before = `(?:^|[\s(\["'])`

// Lookaheads deciding when a dictionary abbreviation's period is protected.
const (
	titleNext   = `(?=\s|:\d)`
	numericNext = `(?=\s\d|\s+\()`
	generalNext = `(?=[.:\-?,]|\s(?:\p{Ll}|I\s|I'm|I'll|\d|\())`
)

var (
	possessive = rule.Map("possessive", `\.(?='s(?:\s|\z))`, sentinel.Protect)
	kg         = rule.Map("kommanditgesellschaft", `(?<=Co)\.(?=\sKG)`, sentinel.Protect)

	singleLetterStart = rule.Map("single-letter-start", `(?<=^[A-Z])\.(?=\s)`, sentinel.Protect)
	singleLetter      = rule.Map("single-letter", `(?<=\s[A-Z])\.(?=,?\s)`, sentinel.Protect)

	multiPeriod = rule.Map("multi-period",
		`(?<![a-z]`+sentinel.AnyPeriod+`)\b[a-z](?:`+sentinel.AnyPeriod+`[a-z])+`+sentinel.AnyPeriod,
		sentinel.Protect, regexp2.IgnoreCase)

	amPM = rule.Map("am-pm",
		"(?<=(?:P\uE000M|A\uE000M|p\uE000m|a\uE000m))\uE000(?=\\s[A-Z])",
		sentinel.Mark)
)

// acronyms are released as sentence final before a starter word.
var acronyms = []string{
	"U\uE000S", `U\.S`, "U\uE000K", "E\uE000U", `E\.U`, "U\uE000S\uE000A", `U\.S\.A`,
	`\bI`, "i[.\uE000]v", "I[.\uE000]V",
}

// Protector replaces abbreviation periods with the protected-period sentinel.
// It is safe for concurrent use.
type Protector struct {
	rules rule.Chain
}

// New compiles a protector for the abbreviations in d.
func New(d *lexicon.Dictionary) (*Protector, error) {
	rules := rule.Chain{possessive, kg, singleLetterStart, singleLetter}

	for _, step := range []struct {
		name       string
		categories []lexicon.Category
		next       string
	}{
		{"title", []lexicon.Category{lexicon.Title}, titleNext},
		{"numeric", []lexicon.Category{lexicon.Numeric}, numericNext},
		{"general", []lexicon.Category{lexicon.General, lexicon.Acronym}, generalNext},
	} {
		var tokens []string
		for _, c := range step.categories {
			tokens = append(tokens, d.Tokens(c)...)
		}
		if len(tokens) == 0 {
			continue
		}
		expr := "(?<=" + before + "(?i:" + rule.Alternation(tokens) + `))\.` + step.next
		r, err := rule.CompileMap(step.name, expr, sentinel.Protect, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("abbreviations: %w", err)
		}
		rules = append(rules, r)
	}

	rules = append(rules, multiPeriod, amPM)

	if starters := d.Tokens(lexicon.Starter); len(starters) > 0 {
		expr := "(?<=(?:" + strings.Join(acronyms, "|") + "))\uE000" +
			`(?=\s(?:` + rule.Alternation(starters) + `)\s)`
		r, err := rule.CompileMap("abbreviation-as-boundary", expr, sentinel.Mark, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("abbreviations: %w", err)
		}
		rules = append(rules, r)
	}

	return &Protector{rules: rules}, nil
}

// Apply protects abbreviation periods in b.
func (p *Protector) Apply(b *buffer.Buffer) (*buffer.Buffer, error) {
	return p.rules.Run(b)
}
