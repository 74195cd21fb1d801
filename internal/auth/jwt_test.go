package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "user-1", "manager")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, role, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("userID: want=user-1 got=%q", userID)
	}
	if role != "manager" {
		t.Fatalf("role: want=manager got=%q", role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), "user-1", "manager")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := ValidateToken([]byte("secret-b"), token); err == nil {
		t.Fatal("token signed with a different secret should be rejected")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, _, err := ValidateToken([]byte("secret"), "not-a-token"); err == nil {
		t.Fatal("garbage should be rejected")
	}
}
