package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	password := "correct-horse-battery"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("hash should not equal the plaintext password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword should accept the correct password")
	}

	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestCheckPasswordInvalidHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("CheckPassword should reject a malformed hash")
	}
}
