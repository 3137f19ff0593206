package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "s3cret!" {
		t.Fatalf("digest must not equal the raw password")
	}

	if !VerifyPassword("s3cret!", digest) {
		t.Fatalf("expected correct password to verify")
	}
	if VerifyPassword("wrong", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestVerifyPassword_BadDigest(t *testing.T) {
	t.Parallel()

	if VerifyPassword("anything", "not-a-bcrypt-digest") {
		t.Fatalf("expected verification against a bad digest to fail")
	}
}
