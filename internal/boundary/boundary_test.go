package boundary

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/lexicon"
)

var tokenMarker = regexp.MustCompile(`⟦(\d+)(!?)⟧`)

// fromVisible turns the notation produced by sentinel.Visible back into a
// working buffer.
func fromVisible(s string) *buffer.Buffer {
	s = tokenMarker.ReplaceAllStringFunc(s, func(m string) string {
		sub := tokenMarker.FindStringSubmatch(m)
		i, _ := strconv.Atoi(sub[1])
		return string(sentinel.Token(i, sub[2] == "!"))
	})
	s = strings.NewReplacer(
		".|", string(sentinel.BoundaryPeriod),
		"?|", string(sentinel.BoundaryQuestion),
		"!|", string(sentinel.BoundaryExclaim),
		"∯", string(sentinel.ProtectedPeriod),
		"⏎", string(sentinel.Break),
	).Replace(s)
	return buffer.FromSource(s)
}

func TestRules(t *testing.T) {
	r, err := New(lexicon.English())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"abbreviations", "Hi Mr∯ Kim. Let's meet at 3 P∯M∯", "Hi Mr∯ Kim.| Let's meet at 3 P∯M.|"},
		{"ellipsis before lowercase", "Wait… what?", "Wait⋯ what?|"},
		{"punctuation run", "Really?! Yes.", "Really⸮!| Yes.|"},
		{"email", "Mail john.doe@example.com now. Then go.", "Mail john∯doe@example∯com now.| Then go.|"},
		{"url", "See www.stanler.com. Then stop.", "See www∯stanler∯com.| Then stop.|"},
		{"url with query", "Visit https://a.io/x?y=1 today.", "Visit https://a∯io/x⸮y=1 today.|"},
		{"bare domain", "Go to google.com for info.", "Go to google∯com for info.|"},
		{"exclamation word", "I use Yahoo! It rocks.", "I use Yahoo¡ It rocks.|"},
		{"lowercase after period", "a.b is odd", "a∯b is odd"},
		{"digit starts sentence", "I have 3. 4 remain.", "I have 3.| 4 remain.|"},
		{"terminal span then lowercase", "She said, ⟦0!⟧ and left.", "She said, ⟦0!⟧ and left.|"},
		{"terminal span then capital", "He said ⟦0!⟧ Then left.", "He said ⟦0!⟧⏎Then left.|"},
		{"plain span then capital", "He left ⟦0⟧ Then slept", "He left ⟦0⟧ Then slept"},
		{"period before span", "Done. ⟦0!⟧", "Done.| ⟦0!⟧"},
		{"paragraph", "Heading\n\nBody text.", "Heading⏎\nBody text.|"},
		{"single newline", "Heading\nbody text", "Heading\nbody text"},
		{"protected at end", "Ends with etc∯  ", "Ends with etc.|  "},
		{"list break", "Steps:⏎1∯ Mix.⏎2∯ Bake.", "Steps:⏎1∯ Mix.|⏎2∯ Bake.|"},
		{"override", "a.|b", "a∯b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Apply(fromVisible(tt.input))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if v := sentinel.Visible(got.String()); v != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, v, tt.want)
			}
		})
	}
}

func TestRuleOrder(t *testing.T) {
	r, err := New(lexicon.English())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []string{
		"collapse-punctuation", "email", "url", "domain", "exclamation-words",
		"lowercase-continuation", "confirm", "terminal-span", "final-protected",
		"paragraph", "override",
	}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestNoExclamationWords(t *testing.T) {
	d, err := lexicon.New("empty")
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(d)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if slices.Contains(r.Names(), "exclamation-words") {
		t.Error("exclamation rule built without exclamation words")
	}
	got, err := r.Apply(buffer.FromSource("I use Yahoo! It rocks."))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if v := sentinel.Visible(got.String()); v != "I use Yahoo!| It rocks.|" {
		t.Errorf("Apply() = %q", v)
	}
}
