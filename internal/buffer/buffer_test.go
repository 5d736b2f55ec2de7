package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestFromSource(t *testing.T) {
	src := "Hé…!"
	b := FromSource(src)

	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	if b.String() != src {
		t.Errorf("String() = %q, want %q", b.String(), src)
	}

	var sb strings.Builder
	for i := range b.Len() {
		sb.WriteString(b.Chunk(i))
	}
	if sb.String() != src {
		t.Errorf("chunks = %q, want %q", sb.String(), src)
	}
	if b.Offset(b.Len()) != len(src) {
		t.Errorf("Offset(Len()) = %d, want %d", b.Offset(b.Len()), len(src))
	}
}

func TestRewrite(t *testing.T) {
	b := FromSource("a.b")

	got, err := b.Rewrite("a,b")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if got.String() != "a,b" || got.Chunk(1) != "." {
		t.Errorf("Rewrite() = %q chunk %q", got.String(), got.Chunk(1))
	}
	if b.String() != "a.b" {
		t.Error("Rewrite modified the receiver")
	}

	if _, err := b.Rewrite("ab"); !errors.Is(err, ErrLengthChanged) {
		t.Errorf("Rewrite() short error = %v, want ErrLengthChanged", err)
	}
}

func TestBuilderCollapses(t *testing.T) {
	src := "\uFEFFWait..."
	bl := NewBuilder(src, len(src))
	for i, r := range src {
		switch {
		case r == '\uFEFF':
		case r == '.' && bl.Last() == '…':
		case r == '.':
			bl.Add('…', i)
		default:
			bl.Add(r, i)
		}
	}
	b := bl.Buffer()

	if b.String() != "Wait…" {
		t.Fatalf("String() = %q", b.String())
	}
	if b.Chunk(0) != "\uFEFFW" {
		t.Errorf("Chunk(0) = %q, want leading BOM absorbed", b.Chunk(0))
	}
	if b.Chunk(4) != "..." {
		t.Errorf("Chunk(4) = %q, want %q", b.Chunk(4), "...")
	}
}

func TestBuilderEmpty(t *testing.T) {
	b := NewBuilder("\u200B", 1).Buffer()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	if b.Offset(0) != len("\u200B") {
		t.Errorf("Offset(0) = %d", b.Offset(0))
	}
}
