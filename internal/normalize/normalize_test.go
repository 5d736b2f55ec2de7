package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jamesainslie/go-sbd/internal/sentinel"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain", "Hello world.", "Hello world."},
		{"curly quotes", "\u201cHi,\u201d she said. It\u2019s fine.", `"Hi," she said. It's fine.`},
		{"guillemets", "\u00abOui\u00bb", `"Oui"`},
		{"three dots", "Wait... what?", "Wait… what?"},
		{"many dots", "Hmm.....", "Hmm…"},
		{"spaced dots", "Wait. . . what?", "Wait… what?"},
		{"two dots kept", "Odd.. yes", "Odd.. yes"},
		{"space runs", "a  \t b", "a b"},
		{"nbsp", "Mr.\u00a0Kim", "Mr. Kim"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"line separator", "a\u2028b", "a\nb"},
		{"zero width dropped", "a\u200bb\u00adc", "abc"},
		{"fullwidth punctuation", "完\uff0e次\uff1f", "完.次?"},
		{"combining", "cafe\u0301.", "caf\u00e9."},
		{"reserved escaped", "a\ue000b", "a" + string(sentinel.Escaped) + "b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := String(tc.input)
			if got != tc.expected {
				t.Errorf("String(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizeChunksCoverSource(t *testing.T) {
	inputs := []string{
		"",
		"\ufeffHello... world",
		"a\r\n\r\nb",
		"x   y . . . z",
		"\u200b",
		"e\u0301\u0301!",
	}

	for _, in := range inputs {
		b := Normalize(in)
		var sb strings.Builder
		for i := range b.Len() {
			sb.WriteString(b.Chunk(i))
		}
		if b.Len() > 0 && sb.String() != in {
			t.Errorf("chunks of %q = %q", in, sb.String())
		}
		if b.Offset(b.Len()) != len(in) {
			t.Errorf("Offset(Len()) of %q = %d, want %d", in, b.Offset(b.Len()), len(in))
		}
	}
}

func TestEllipsisChunk(t *testing.T) {
	b := Normalize("Wait . . . what")
	for i, r := range b.Runes() {
		if r != '…' {
			continue
		}
		if got := b.Chunk(i); got != ". . ." {
			t.Errorf("ellipsis chunk = %q, want %q", got, ". . .")
		}
		return
	}
	t.Fatalf("no ellipsis in %q", b.String())
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{'\u2019', '\''},
		{'\uff0e', '.'},
		{'\u00a0', ' '},
		{'\r', '\n'},
		{'\u200b', '\u200b'},
		{'x', 'x'},
		{'\ue005', sentinel.Escaped},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%U) = %U, want %U", tt.in, got, tt.want)
		}
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	seeds := []string{
		"Hello world.",
		"Wait... what?",
		"Wait. . . what?",
		"\u201cQuoted\u201d \u2018text\u2019",
		"a\r\n\r\nb",
		"e\u0301   \u3000x",
		". . . . .",
		"..",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip()
		}
		once := String(input)
		twice := String(once)
		if once != twice {
			t.Errorf("not idempotent:\n  input: %q\n  once:  %q\n  twice: %q", input, once, twice)
		}
	})
}
