package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DraftCookieName is the cookie that carries in-progress onboarding answers
// between wizard steps.
const DraftCookieName = "onboarding_draft"

// OnboardingDraft holds the answers collected so far by the onboarding
// wizard. It round-trips through a signed JWT cookie so an interrupted
// wizard resumes where the user left off.
type OnboardingDraft struct {
	Step           int      `json:"step"`
	ChildName      string   `json:"childName,omitempty"`
	ParentNickname string   `json:"parentNickname,omitempty"`
	ParentContact  string   `json:"parentContact,omitempty"`
	Relationship   string   `json:"relationship,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	PreferredTime  string   `json:"preferredTime,omitempty"`
}

type draftClaims struct {
	Draft OnboardingDraft `json:"draft"`
	jwt.RegisteredClaims
}

// DraftSigner signs and verifies onboarding draft cookies.
type DraftSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewDraftSigner creates a signer for onboarding draft tokens.
func NewDraftSigner(secret string, ttl time.Duration) *DraftSigner {
	return &DraftSigner{secret: []byte(secret), ttl: ttl}
}

// Sign serializes a draft into a signed JWT string.
func (s *DraftSigner) Sign(draft OnboardingDraft) (string, error) {
	now := time.Now()
	claims := draftClaims{
		Draft: draft,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a draft token and returns the embedded draft.
func (s *DraftSigner) Parse(tokenString string) (*OnboardingDraft, error) {
	claims := &draftClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid draft token")
	}
	return &claims.Draft, nil
}
