package sentinel

import "testing"

func TestProtectConfirm(t *testing.T) {
	tests := []struct {
		in            rune
		wantProtected rune
		wantBoundary  rune
	}{
		{'.', ProtectedPeriod, BoundaryPeriod},
		{'?', ProtectedQuestion, BoundaryQuestion},
		{'!', ProtectedExclaim, BoundaryExclaim},
		{'…', ProtectedEllipsis, BoundaryEllipsis},
		{ProtectedPeriod, ProtectedPeriod, BoundaryPeriod},
		{BoundaryQuestion, ProtectedQuestion, BoundaryQuestion},
		{'a', 'a', 'a'},
		{Break, Break, Break},
	}

	for _, tt := range tests {
		if got := Protect(tt.in); got != tt.wantProtected {
			t.Errorf("Protect(%U) = %U, want %U", tt.in, got, tt.wantProtected)
		}
		if got := Confirm(tt.in); got != tt.wantBoundary {
			t.Errorf("Confirm(%U) = %U, want %U", tt.in, got, tt.wantBoundary)
		}
	}
}

func TestMark(t *testing.T) {
	for _, m := range []rune{'.', '?', '!', '…'} {
		if got := Mark(Protect(m)); got != m {
			t.Errorf("Mark(Protect(%q)) = %q", m, got)
		}
		if got := Mark(Confirm(m)); got != m {
			t.Errorf("Mark(Confirm(%q)) = %q", m, got)
		}
		if !IsTerminal(Protect(m)) || !IsTerminal(m) {
			t.Errorf("IsTerminal(%q) = false", m)
		}
	}
	if IsTerminal(',') {
		t.Error("IsTerminal(',') = true")
	}
}

func TestClassification(t *testing.T) {
	if !IsProtected(ProtectedEllipsis) || IsProtected(BoundaryPeriod) {
		t.Error("IsProtected misclassifies")
	}
	if !IsBoundary(Break) || !IsBoundary(BoundaryExclaim) || IsBoundary(ProtectedPeriod) {
		t.Error("IsBoundary misclassifies")
	}
}

func TestReserved(t *testing.T) {
	reserved := []rune{'\uE000', '\uE0FF', 0xF0000, 0x10FFFD}
	for _, r := range reserved {
		if !Reserved(r) {
			t.Errorf("Reserved(%U) = false", r)
		}
	}
	free := []rune{'a', '.', '\uE100', 0xEFFFF}
	for _, r := range free {
		if Reserved(r) {
			t.Errorf("Reserved(%U) = true", r)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	for _, i := range []int{0, 1, 42, MaxTokens - 1} {
		for _, terminal := range []bool{false, true} {
			r := Token(i, terminal)
			if !Reserved(r) {
				t.Errorf("Token(%d) = %U not reserved", i, r)
			}
			got, gotTerminal, ok := TokenIndex(r)
			if !ok || got != i || gotTerminal != terminal {
				t.Errorf("TokenIndex(Token(%d, %v)) = %d, %v, %v", i, terminal, got, gotTerminal, ok)
			}
		}
	}
	if IsToken('.') || IsToken(Break) {
		t.Error("IsToken accepted a non-token")
	}
}

func TestVisible(t *testing.T) {
	in := "Mr" + string(ProtectedPeriod) + " Kim" + string(BoundaryPeriod) + string(Break) +
		"Go " + string(Token(3, true)) + string(Token(4, false))
	want := "Mr∯ Kim.|⏎Go ⟦3!⟧⟦4⟧"
	if got := Visible(in); got != want {
		t.Errorf("Visible() = %q, want %q", got, want)
	}
}
