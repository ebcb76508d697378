package security

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, errHash := HashPassword("correct horse")
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	if hash == "correct horse" {
		t.Fatal("password stored in clear")
	}

	if !CheckPassword(hash, "correct horse") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatching password to fail")
	}
}

func TestTOTPKeyGeneration(t *testing.T) {
	key, errGenerate := GenerateTOTPKey("alice")
	if errGenerate != nil {
		t.Fatalf("generate totp key: %v", errGenerate)
	}
	if key.Secret() == "" {
		t.Fatal("expected a non-empty secret")
	}
	if ValidateTOTPCode("000000", key.Secret()) {
		t.Fatal("expected a static code to fail validation")
	}
}
