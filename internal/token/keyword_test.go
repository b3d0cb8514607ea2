package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"let", KwLet, true},
		{"val", KwVal, true},
		{"datatype", KwDatatype, true},
		{"withtype", KwWithtype, true},
		{"Let", 0, false},
		{"x", 0, false},
		{"structure", KwStructure, true},
	}
	for _, c := range cases {
		got, ok := LookupKeyword(c.ident)
		if ok != c.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", c.ident, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", c.ident, got, c.want)
		}
	}
}

func TestIsSymbolicChar(t *testing.T) {
	for _, r := range "!%&$#+-/:<=>?@\\~`^|*" {
		if !IsSymbolicChar(r) {
			t.Errorf("IsSymbolicChar(%q) = false, want true", r)
		}
	}
	for _, r := range "abcXYZ01_'() " {
		if IsSymbolicChar(r) {
			t.Errorf("IsSymbolicChar(%q) = true, want false", r)
		}
	}
}

func TestReservedSymbolic(t *testing.T) {
	for text, k := range reservedSymbolic {
		if k.String() != text {
			t.Errorf("reservedSymbolic[%q].String() = %q", text, k.String())
		}
	}
}
