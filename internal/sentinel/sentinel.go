// Package sentinel defines the reserved runes the pipeline writes into the
// working buffer to record protection and boundary decisions.
//
// All sentinels live in private-use ranges. Input runes that fall inside
// those ranges are replaced with Escaped on entry; the restorer recovers
// them from the source text.
package sentinel

import (
	"strconv"
	"strings"
)

const (
	ProtectedPeriod   rune = '\uE000'
	ProtectedQuestion rune = '\uE001'
	ProtectedExclaim  rune = '\uE002'
	ProtectedEllipsis rune = '\uE003'

	BoundaryPeriod   rune = '\uE010'
	BoundaryQuestion rune = '\uE011'
	BoundaryExclaim  rune = '\uE012'
	BoundaryEllipsis rune = '\uE013'

	// Break replaces a whitespace rune that closes a sentence.
	Break rune = '\uE014'

	// Escaped stands in for an input rune that collides with a reserved range.
	Escaped rune = '\uE0FF'

	tokenBase         rune = 0xF0000
	terminalTokenBase rune = 0x100000
)

// MaxTokens is the number of extraction tokens one buffer can hold.
const MaxTokens = 0xFFFE

// Pattern fragments for use inside regular expressions.
const (
	Marks          = `[.?!…]`
	ProtectedMarks = "[\uE000-\uE003]"
	BoundaryMarks  = "[\uE010-\uE013]"
	AnyPeriod      = "[.\uE000]"

	// Space matches whitespace or Break; NonSpace matches anything else.
	Space    = "[\\s\uE014]"
	NonSpace = "[^\\s\uE014]"

	Tokens         = "[\U000F0000-\U000FFFFD\U00100000-\U0010FFFD]"
	TerminalTokens = "[\U00100000-\U0010FFFD]"
)

var (
	protected = map[rune]rune{'.': ProtectedPeriod, '?': ProtectedQuestion, '!': ProtectedExclaim, '…': ProtectedEllipsis}
	confirmed = map[rune]rune{'.': BoundaryPeriod, '?': BoundaryQuestion, '!': BoundaryExclaim, '…': BoundaryEllipsis}
	original  = map[rune]rune{
		ProtectedPeriod: '.', ProtectedQuestion: '?', ProtectedExclaim: '!', ProtectedEllipsis: '…',
		BoundaryPeriod: '.', BoundaryQuestion: '?', BoundaryExclaim: '!', BoundaryEllipsis: '…',
	}
)

// Reserved reports whether r lies in a range the pipeline uses internally.
func Reserved(r rune) bool {
	return (r >= 0xE000 && r <= 0xE0FF) || r >= tokenBase
}

// Mark returns the terminal mark a protected or boundary sentinel stands for.
// Any other rune is returned unchanged.
func Mark(r rune) rune {
	if m, ok := original[r]; ok {
		return m
	}
	return r
}

// Protect maps a terminal mark, raw or already decided, to its protected form.
func Protect(r rune) rune {
	if p, ok := protected[Mark(r)]; ok {
		return p
	}
	return r
}

// Confirm maps a terminal mark, raw or already decided, to its boundary form.
func Confirm(r rune) rune {
	if c, ok := confirmed[Mark(r)]; ok {
		return c
	}
	return r
}

// IsTerminal reports whether r is a terminal mark in any of its forms.
func IsTerminal(r rune) bool {
	_, ok := protected[Mark(r)]
	return ok
}

// IsProtected reports whether r is a protected-mark sentinel.
func IsProtected(r rune) bool {
	return r >= ProtectedPeriod && r <= ProtectedEllipsis
}

// IsBoundary reports whether r ends a sentence: a boundary mark or Break.
func IsBoundary(r rune) bool {
	return r >= BoundaryPeriod && r <= Break
}

// Token returns the rune encoding extraction table index i.
func Token(i int, terminal bool) rune {
	if terminal {
		return terminalTokenBase + rune(i)
	}
	return tokenBase + rune(i)
}

// TokenIndex decodes an extraction token.
func TokenIndex(r rune) (index int, terminal, ok bool) {
	switch {
	case r >= terminalTokenBase && r < terminalTokenBase+MaxTokens:
		return int(r - terminalTokenBase), true, true
	case r >= tokenBase && r < tokenBase+MaxTokens:
		return int(r - tokenBase), false, true
	}
	return 0, false, false
}

// IsToken reports whether r is an extraction token.
func IsToken(r rune) bool {
	_, _, ok := TokenIndex(r)
	return ok
}

var visible = map[rune]string{
	ProtectedPeriod:   "∯",
	ProtectedQuestion: "⸮",
	ProtectedExclaim:  "¡",
	ProtectedEllipsis: "⋯",
	BoundaryPeriod:    ".|",
	BoundaryQuestion:  "?|",
	BoundaryExclaim:   "!|",
	BoundaryEllipsis:  "…|",
	Break:             "⏎",
	Escaped:           "�",
}

// Visible renders sentinels in text as printable markers for logs and tests.
// Tokens are shown as ⟦n⟧, or ⟦n!⟧ when the span ends in terminal punctuation.
func Visible(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if v, ok := visible[r]; ok {
			sb.WriteString(v)
			continue
		}
		if i, terminal, ok := TokenIndex(r); ok {
			sb.WriteString("⟦" + strconv.Itoa(i))
			if terminal {
				sb.WriteString("!")
			}
			sb.WriteString("⟧")
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
