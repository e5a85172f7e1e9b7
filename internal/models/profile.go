package models

import "time"

// Profile roles
const (
	RoleChild  = "child"
	RoleParent = "parent"
)

// Preferred delivery slots
const (
	TimeMorning   = "morning"   // 09:00
	TimeAfternoon = "afternoon" // 14:00
	TimeEvening   = "evening"   // 19:00
)

// Profile holds the per-account display data collected during onboarding.
// One profile per account; its presence is what marks onboarding complete.
type Profile struct {
	ID            int64
	UserID        int64
	Role          string
	Name          string
	PhoneNumber   string
	PreferredTime string
	Onboarding    *OnboardingData
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OnboardingData is the free-form payload saved at the end of the
// onboarding wizard. Question sending reads the parent contact from here.
type OnboardingData struct {
	ParentNickname string   `json:"parentNickname"`
	ParentContact  string   `json:"parentContact"`
	Interests      []string `json:"interests"`
	PreferredTime  string   `json:"preferredTime"`
}

// HasParentContact reports whether the onboarding payload carries enough
// parent information to address a question.
func (p *Profile) HasParentContact() bool {
	return p.Onboarding != nil && p.Onboarding.ParentNickname != "" && p.Onboarding.ParentContact != ""
}

// DeliveryHour maps the preferred slot to its local send hour.
// Unknown values fall back to morning.
func DeliveryHour(preferredTime string) int {
	switch preferredTime {
	case TimeAfternoon:
		return 14
	case TimeEvening:
		return 19
	default:
		return 9
	}
}
