package identity

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("test-secret", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not-a-token"); err == nil {
		t.Fatal("garbage token parsed")
	}
}
