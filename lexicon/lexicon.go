// Package lexicon provides the abbreviation dictionary consulted by the
// segmenter.
//
// A Dictionary maps token text to a Category. It is immutable once built:
// With returns a new dictionary, so one value can be shared by any number
// of concurrent segmenters.
package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ErrInvalidDictionary indicates a dictionary asset that cannot be decoded.
var ErrInvalidDictionary = errors.New("lexicon: invalid dictionary")

// Category selects how a dictionary token is treated.
type Category int

const (
	// Title abbreviations precede a name and never end a sentence when
	// followed by whitespace ("Mr.", "Dr.", "Prof.").
	Title Category = iota + 1
	// Numeric abbreviations precede a number ("No. 5", "pp. 12").
	Numeric
	// General abbreviations may end a sentence; their period is protected
	// only before lowercase or numeric continuation.
	General
	// Acronym abbreviations contain internal periods ("e.g", "Ph.D").
	Acronym
	// Starter words commonly open a sentence. An acronym such as "U.S."
	// followed by one is treated as sentence final.
	Starter
	// Exclamation tokens contain an exclamation mark that never ends a
	// sentence ("Yahoo!").
	Exclamation
)

var categoryNames = map[Category]string{
	Title:       "title",
	Numeric:     "numeric",
	General:     "general",
	Acronym:     "acronym",
	Starter:     "starter",
	Exclamation: "exclamation",
}

// String returns the lowercase category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory parses a category name as returned by String.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

// Entry is one dictionary token.
type Entry struct {
	Token    string
	Category Category
}

// Dictionary is an immutable token to category mapping.
type Dictionary struct {
	version string
	entries map[string]Category
}

// New builds a dictionary from entries. A later entry for the same token
// replaces an earlier one.
func New(version string, entries ...Entry) (*Dictionary, error) {
	d := &Dictionary{version: version, entries: make(map[string]Category, len(entries))}
	for _, e := range entries {
		if err := d.add(e); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// With returns a copy of d with tokens added under category.
func (d *Dictionary) With(category Category, tokens ...string) (*Dictionary, error) {
	out := &Dictionary{version: d.version, entries: make(map[string]Category, len(d.entries)+len(tokens))}
	for tok, c := range d.entries {
		out.entries[tok] = c
	}
	for _, tok := range tokens {
		if err := out.add(Entry{Token: tok, Category: category}); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Dictionary) add(e Entry) error {
	if !e.Category.Valid() {
		return fmt.Errorf("%w: token %q has %v", ErrInvalidDictionary, e.Token, e.Category)
	}
	tok := key(e.Token, e.Category)
	if tok == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidDictionary)
	}
	d.entries[tok] = e.Category
	return nil
}

// key folds abbreviation tokens to lowercase without their trailing period.
// Starter and exclamation tokens are matched exactly.
func key(token string, c Category) string {
	token = strings.TrimSpace(token)
	switch c {
	case Starter, Exclamation:
		return token
	}
	return strings.ToLower(strings.TrimSuffix(token, "."))
}

// Version returns the dictionary version label.
func (d *Dictionary) Version() string { return d.version }

// Len returns the number of tokens.
func (d *Dictionary) Len() int { return len(d.entries) }

// Lookup returns the category of token.
func (d *Dictionary) Lookup(token string) (Category, bool) {
	if c, ok := d.entries[strings.TrimSpace(token)]; ok {
		return c, true
	}
	c, ok := d.entries[key(token, General)]
	return c, ok
}

// Tokens returns the tokens of category in lexical order.
func (d *Dictionary) Tokens(category Category) []string {
	tokens := lo.Keys(lo.PickByValues(d.entries, []Category{category}))
	slices.Sort(tokens)
	return tokens
}

// Entries returns all entries ordered by token.
func (d *Dictionary) Entries() []Entry {
	entries := lo.MapToSlice(d.entries, func(tok string, c Category) Entry {
		return Entry{Token: tok, Category: c}
	})
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Token, b.Token) })
	return entries
}
