package abbrev

import (
	"testing"

	"github.com/jamesainslie/go-sbd/internal/buffer"
	"github.com/jamesainslie/go-sbd/internal/sentinel"
	"github.com/jamesainslie/go-sbd/lexicon"
)

func TestProtector(t *testing.T) {
	p, err := New(lexicon.English())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"title", "Hi Mr. Kim. Let's meet at 3 P.M.", "Hi Mr∯ Kim. Let's meet at 3 P∯M∯"},
		{"acronym before lowercase", "U.S. army at www.stanler.com", "U∯S∯ army at www.stanler.com"},
		{"pm before capital", "The meeting is at 5 p.m. Then we left.", "The meeting is at 5 p∯m. Then we left."},
		{"kommanditgesellschaft", "Co. KG is big", "Co∯ KG is big"},
		{"possessive", "Inc.'s shares", "Inc∯'s shares"},
		{"initials", "J. R. R. Tolkien wrote it.", "J∯ R∯ R∯ Tolkien wrote it."},
		{"acronym before starter", "He lives in the U.S. The weather is nice.", "He lives in the U∯S. The weather is nice."},
		{"numeric", "Please see p. 5 for details.", "Please see p∯ 5 for details."},
		{"numero sign", "It is at N°. 1026 here.", "It is at N°∯ 1026 here."},
		{"dotted runs", "x.y.z and a.b.c.d", "x∯y∯z and a∯b∯c∯d"},
		{"title before name", "Visit Dr. Smith at 5:00", "Visit Dr∯ Smith at 5:00"},
		{"general before lowercase", "Apples, oranges, etc. are fruit.", "Apples, oranges, etc∯ are fruit."},
		{"general before capital", "I like etc. The end.", "I like etc. The end."},
		{"unknown token", "Unknown abc. def", "Unknown abc. def"},
		{"inside parens", "(Prof. Lee)", "(Prof∯ Lee)"},
		{"multi period", "e.g. this", "e∯g∯ this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Apply(buffer.FromSource(tt.input))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if v := sentinel.Visible(got.String()); v != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.input, v, tt.want)
			}
		})
	}
}

func TestProtectorCustomDictionary(t *testing.T) {
	d, err := lexicon.New("custom", lexicon.Entry{Token: "approx", Category: lexicon.General})
	if err != nil {
		t.Fatal(err)
	}
	p, err := New(d)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"approx. two hours", "approx∯ two hours"},
		{"Ask Mr. Kim.", "Ask Mr. Kim."},
		{"A. B. Smith", "A∯ B∯ Smith"},
	}
	for _, tt := range tests {
		got, err := p.Apply(buffer.FromSource(tt.input))
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if v := sentinel.Visible(got.String()); v != tt.want {
			t.Errorf("Apply(%q) = %q, want %q", tt.input, v, tt.want)
		}
	}
}
