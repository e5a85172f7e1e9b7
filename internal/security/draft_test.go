package security

import (
	"testing"
	"time"
)

func TestDraftSignAndParse(t *testing.T) {
	signer := NewDraftSigner("draft-secret", time.Hour)

	draft := OnboardingDraft{
		Step:           3,
		ChildName:      "김지은",
		ParentNickname: "엄마",
		ParentContact:  "010-1234-5678",
		Relationship:   "mother",
		Interests:      []string{"요리", "여행"},
		PreferredTime:  "morning",
	}

	token, err := signer.Sign(draft)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	parsed, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if parsed.Step != 3 {
		t.Errorf("expected step 3, got %d", parsed.Step)
	}
	if parsed.ChildName != "김지은" {
		t.Errorf("child name mismatch: %q", parsed.ChildName)
	}
	if parsed.ParentContact != "010-1234-5678" {
		t.Errorf("parent contact mismatch: %q", parsed.ParentContact)
	}
	if len(parsed.Interests) != 2 || parsed.Interests[0] != "요리" {
		t.Errorf("interests mismatch: %v", parsed.Interests)
	}
}

func TestDraftParseRejectsWrongSecret(t *testing.T) {
	signer := NewDraftSigner("secret-a", time.Hour)
	other := NewDraftSigner("secret-b", time.Hour)

	token, err := signer.Sign(OnboardingDraft{Step: 1})
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := other.Parse(token); err == nil {
		t.Error("expected error parsing token with a different secret")
	}
}

func TestDraftParseRejectsExpired(t *testing.T) {
	signer := NewDraftSigner("secret", -time.Minute)

	token, err := signer.Sign(OnboardingDraft{Step: 1})
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := signer.Parse(token); err == nil {
		t.Error("expected error parsing expired token")
	}
}

func TestDraftParseRejectsGarbage(t *testing.T) {
	signer := NewDraftSigner("secret", time.Hour)
	if _, err := signer.Parse("not.a.jwt"); err == nil {
		t.Error("expected error parsing garbage token")
	}
}
