package service

import (
	"errors"
	"fmt"
	"maeumbaedal/internal/models"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/validation"
)

var ErrProfileExists = errors.New("profile already exists")

// ProfileService handles onboarding completion and profile settings
type ProfileService struct {
	profileRepo      *repository.ProfileRepository
	relationshipRepo *repository.RelationshipRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo *repository.ProfileRepository, relationshipRepo *repository.RelationshipRepository) *ProfileService {
	return &ProfileService{
		profileRepo:      profileRepo,
		relationshipRepo: relationshipRepo,
	}
}

// GetProfile returns the user's profile, or nil when onboarding has not
// been completed yet.
func (s *ProfileService) GetProfile(userID int64) (*models.Profile, error) {
	return s.profileRepo.GetProfileByUserID(userID)
}

// GetRelationship returns the child's parent relationship, or nil.
func (s *ProfileService) GetRelationship(childUserID int64) (*models.ParentChildRelationship, error) {
	return s.relationshipRepo.GetByChildUserID(childUserID)
}

// CompleteOnboarding turns a finished wizard draft into the child's
// profile and parent relationship. All steps are re-validated here; the
// per-step checks in the wizard only gate navigation.
func (s *ProfileService) CompleteOnboarding(userID int64, draft security.OnboardingDraft) (*models.Profile, error) {
	if err := validation.ValidateName(draft.ChildName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(draft.ParentNickname); err != nil {
		return nil, err
	}
	if !models.ValidRelationship(draft.Relationship) {
		return nil, validation.ValidationError{Field: "relationship", Message: "unknown relationship"}
	}
	phone, err := validation.NormalizePhone(draft.ParentContact)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateInterests(draft.Interests); err != nil {
		return nil, err
	}
	if draft.PreferredTime != models.TimeMorning &&
		draft.PreferredTime != models.TimeAfternoon &&
		draft.PreferredTime != models.TimeEvening {
		return nil, validation.ValidationError{Field: "preferredTime", Message: "unknown delivery time"}
	}

	existing, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	onboarding := &models.OnboardingData{
		ParentNickname: draft.ParentNickname,
		ParentContact:  phone,
		Interests:      draft.Interests,
		PreferredTime:  draft.PreferredTime,
	}

	profile, err := s.profileRepo.CreateProfile(userID, models.RoleChild, draft.ChildName, phone, draft.PreferredTime, onboarding)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if _, err := s.relationshipRepo.CreateRelationship(userID, draft.ParentNickname, phone, draft.Relationship); err != nil {
		return nil, fmt.Errorf("failed to create relationship: %w", err)
	}

	return profile, nil
}

// SaveSettings updates the child's own name, the delivery time slot, and
// the parent's details from the settings screen.
func (s *ProfileService) SaveSettings(userID int64, name, preferredTime, parentName, parentPhone, relationship string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if preferredTime != models.TimeMorning &&
		preferredTime != models.TimeAfternoon &&
		preferredTime != models.TimeEvening {
		return validation.ValidationError{Field: "preferredTime", Message: "unknown delivery time"}
	}
	if err := validation.ValidateName(parentName); err != nil {
		return err
	}
	if !models.ValidRelationship(relationship) {
		return validation.ValidationError{Field: "relationship", Message: "unknown relationship"}
	}
	phone, err := validation.NormalizePhone(parentPhone)
	if err != nil {
		return err
	}

	if err := s.profileRepo.UpdateProfile(userID, name, preferredTime); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err != nil {
		return fmt.Errorf("failed to reload profile: %w", err)
	}
	if profile != nil {
		onboarding := profile.Onboarding
		if onboarding == nil {
			onboarding = &models.OnboardingData{}
		}
		onboarding.ParentNickname = parentName
		onboarding.ParentContact = phone
		onboarding.PreferredTime = preferredTime
		if err := s.profileRepo.UpdateOnboardingData(userID, onboarding); err != nil {
			return fmt.Errorf("failed to update onboarding data: %w", err)
		}
	}

	if err := s.relationshipRepo.UpsertByChildUserID(userID, parentName, phone, relationship); err != nil {
		return fmt.Errorf("failed to update relationship: %w", err)
	}

	return nil
}
