package auth

import "strings"

// IdentifierKind tags how a login identifier should be resolved.
type IdentifierKind int

const (
	// IdentifierEmail resolves through the unique email column.
	IdentifierEmail IdentifierKind = iota
	// IdentifierUsername resolves through the unique username column.
	IdentifierUsername
)

// Identifier is a tagged login identifier. The disambiguation rule is
// syntactic: a value containing "@" is an email, anything else a username.
// No database probe is involved, so the choice leaks nothing about which
// accounts exist.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// ParseIdentifier classifies a raw login identifier.
func ParseIdentifier(raw string) Identifier {
	if strings.Contains(raw, "@") {
		return Identifier{Kind: IdentifierEmail, Value: raw}
	}
	return Identifier{Kind: IdentifierUsername, Value: raw}
}
