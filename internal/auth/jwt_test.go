package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	tokens := NewTokens([]byte("super-secret"), time.Hour)

	tok, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "a@x.com")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tokens := NewTokens([]byte("secret"), -1*time.Second)

	tok, err := tokens.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := tokens.Verify(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokens([]byte("right-secret"), time.Hour).Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokens([]byte("wrong-secret"), time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := NewTokens([]byte("k"), time.Hour).Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
