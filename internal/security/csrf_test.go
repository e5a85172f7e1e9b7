package security

import "testing"

func TestCSRFGenerateAndValidate(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	token, err := gen.GenerateToken("session-123")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if !gen.ValidateToken("session-123", token) {
		t.Error("token should validate for its own session")
	}

	if gen.ValidateToken("other-session", token) {
		t.Error("token should not validate for a different session")
	}

	if gen.ValidateToken("session-123", "tampered") {
		t.Error("tampered token should not validate")
	}
}

func TestCSRFDeterministic(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	a, _ := gen.GenerateToken("session-123")
	b, _ := gen.GenerateToken("session-123")
	if a != b {
		t.Error("same session should produce the same token")
	}
}

func TestCSRFDifferentSecrets(t *testing.T) {
	genA := NewCSRFGenerator("secret-a")
	genB := NewCSRFGenerator("secret-b")

	token, _ := genA.GenerateToken("session-123")
	if genB.ValidateToken("session-123", token) {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestCSRFEmptyInputs(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	if _, err := gen.GenerateToken(""); err == nil {
		t.Error("expected error for empty session ID")
	}
	if gen.ValidateToken("", "token") {
		t.Error("empty session ID should not validate")
	}
	if gen.ValidateToken("session", "") {
		t.Error("empty token should not validate")
	}
}
