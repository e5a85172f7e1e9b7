package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				UserID:    1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestQuestionCanFollowUp(t *testing.T) {
	answered := time.Now()
	tests := []struct {
		name     string
		question Question
		userID   int64
		want     bool
	}{
		{
			name: "answered question without followup",
			question: Question{
				ChildUserID: 1,
				Status:      StatusAnswered,
				AnswerText:  "잘 지내고 있단다",
				AnsweredAt:  &answered,
			},
			userID: 1,
			want:   true,
		},
		{
			name: "not yet answered",
			question: Question{
				ChildUserID: 1,
				Status:      StatusSent,
			},
			userID: 1,
			want:   false,
		},
		{
			name: "followup already sent",
			question: Question{
				ChildUserID:       1,
				Status:            StatusAnswered,
				AnswerText:        "잘 지내고 있단다",
				ChildFollowupText: "다행이에요!",
			},
			userID: 1,
			want:   false,
		},
		{
			name: "someone else's question",
			question: Question{
				ChildUserID: 1,
				Status:      StatusAnswered,
				AnswerText:  "잘 지내고 있단다",
			},
			userID: 2,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.question.CanFollowUp(tt.userID)
			if result != tt.want {
				t.Errorf("Question.CanFollowUp(%d) = %v, want %v", tt.userID, result, tt.want)
			}
		})
	}
}

func TestProfileHasParentContact(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    bool
	}{
		{
			name: "nickname and contact present",
			profile: Profile{
				Onboarding: &OnboardingData{
					ParentNickname: "어머니",
					ParentContact:  "010-1234-5678",
				},
			},
			want: true,
		},
		{
			name: "missing contact",
			profile: Profile{
				Onboarding: &OnboardingData{
					ParentNickname: "어머니",
				},
			},
			want: false,
		},
		{
			name: "missing nickname",
			profile: Profile{
				Onboarding: &OnboardingData{
					ParentContact: "010-1234-5678",
				},
			},
			want: false,
		},
		{
			name:    "no onboarding data at all",
			profile: Profile{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.profile.HasParentContact()
			if result != tt.want {
				t.Errorf("Profile.HasParentContact() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestDeliveryHour(t *testing.T) {
	tests := []struct {
		preferredTime string
		want          int
	}{
		{TimeMorning, 9},
		{TimeAfternoon, 14},
		{TimeEvening, 19},
		{"", 9},
		{"midnight", 9},
	}

	for _, tt := range tests {
		t.Run(tt.preferredTime, func(t *testing.T) {
			result := DeliveryHour(tt.preferredTime)
			if result != tt.want {
				t.Errorf("DeliveryHour(%q) = %d, want %d", tt.preferredTime, result, tt.want)
			}
		})
	}
}

func TestValidRelationship(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"mother", true},
		{"father", true},
		{"grandmother", true},
		{"grandfather", true},
		{"other", true},
		{"uncle", false},
		{"", false},
		{"Mother", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := ValidRelationship(tt.value)
			if result != tt.want {
				t.Errorf("ValidRelationship(%q) = %v, want %v", tt.value, result, tt.want)
			}
		})
	}
}
