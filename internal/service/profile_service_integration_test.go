package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/validation"
)

// setupProfileService builds a profile service backed by a throwaway
// SQLite database with the real migrations applied, plus a fresh user
// that has not gone through onboarding yet.
func setupProfileService(t *testing.T) (*ProfileService, int64) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	user, err := userRepo.CreateUser("child@example.com", "hash", "김민지")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	svc := NewProfileService(
		repository.NewProfileRepository(db),
		repository.NewRelationshipRepository(db),
	)
	return svc, user.ID
}

func completedDraft() security.OnboardingDraft {
	return security.OnboardingDraft{
		Step:           4,
		ChildName:      "김민지",
		ParentNickname: "어머니",
		ParentContact:  "010 8765 4321",
		Relationship:   "mother",
		Interests:      []string{"요리", "여행"},
		PreferredTime:  "morning",
	}
}

func TestCompleteOnboardingPersistsNormalizedPhone(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, userID := setupProfileService(t)

	profile, err := svc.CompleteOnboarding(userID, completedDraft())
	if err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	if profile.PhoneNumber != "010-8765-4321" {
		t.Errorf("PhoneNumber = %q, want %q", profile.PhoneNumber, "010-8765-4321")
	}

	// The stored row carries the same normalized number
	reloaded, err := svc.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("Profile should exist after onboarding")
	}
	if reloaded.PhoneNumber != "010-8765-4321" {
		t.Errorf("Stored PhoneNumber = %q, want %q", reloaded.PhoneNumber, "010-8765-4321")
	}
	if reloaded.Onboarding == nil || reloaded.Onboarding.ParentContact != "010-8765-4321" {
		t.Errorf("Onboarding parent contact not normalized: %+v", reloaded.Onboarding)
	}

	relationship, err := svc.GetRelationship(userID)
	if err != nil {
		t.Fatalf("GetRelationship failed: %v", err)
	}
	if relationship == nil {
		t.Fatal("Relationship should exist after onboarding")
	}
	if relationship.ParentPhone != "010-8765-4321" {
		t.Errorf("Relationship phone = %q, want %q", relationship.ParentPhone, "010-8765-4321")
	}
	if relationship.Relationship != "mother" {
		t.Errorf("Relationship = %q, want %q", relationship.Relationship, "mother")
	}
}

func TestCompleteOnboardingRejectsBadDrafts(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, userID := setupProfileService(t)

	tests := []struct {
		name   string
		mutate func(*security.OnboardingDraft)
	}{
		{
			name:   "no interests selected",
			mutate: func(d *security.OnboardingDraft) { d.Interests = nil },
		},
		{
			name:   "unknown relationship",
			mutate: func(d *security.OnboardingDraft) { d.Relationship = "uncle" },
		},
		{
			name:   "invalid phone",
			mutate: func(d *security.OnboardingDraft) { d.ParentContact = "02-1234-5678" },
		},
		{
			name:   "unknown delivery time",
			mutate: func(d *security.OnboardingDraft) { d.PreferredTime = "midnight" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completedDraft()
			tt.mutate(&draft)
			_, err := svc.CompleteOnboarding(userID, draft)
			var verr validation.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	// None of the rejected drafts should have created a profile
	profile, err := svc.GetProfile(userID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if profile != nil {
		t.Error("No profile should exist after rejected drafts")
	}
}

func TestCompleteOnboardingOnlyOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, userID := setupProfileService(t)

	if _, err := svc.CompleteOnboarding(userID, completedDraft()); err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	_, err := svc.CompleteOnboarding(userID, completedDraft())
	if !errors.Is(err, ErrProfileExists) {
		t.Errorf("Expected ErrProfileExists, got %v", err)
	}
}
