package auth

import "testing"

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		kind IdentifierKind
	}{
		{"a@x.com", IdentifierEmail},
		{"user@sub.domain.org", IdentifierEmail},
		{"alice", IdentifierUsername},
		{"alice.b", IdentifierUsername},
		{"", IdentifierUsername},
	}

	for _, tt := range tests {
		got := ParseIdentifier(tt.raw)
		if got.Kind != tt.kind {
			t.Errorf("ParseIdentifier(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
		}
		if got.Value != tt.raw {
			t.Errorf("ParseIdentifier(%q).Value = %q, want the input back", tt.raw, got.Value)
		}
	}
}
