package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// phoneRegex matches Korean mobile numbers: 010 followed by 7 or 8
// digits (legacy 10-digit numbers have a 3-digit middle group), with
// optional hyphen or space separators.
var phoneRegex = regexp.MustCompile(`^010[-\s]?(\d{3,4})[-\s]?(\d{4})$`)

// MaxInterests caps how many topics a child can pick for their parent.
const MaxInterests = 3

// MinAnswerLength is the minimum number of characters (after trimming)
// a parent must write before an answer is accepted.
const MinAnswerLength = 10

// InterestOptions lists the topics offered during onboarding.
var InterestOptions = []string{
	"요리", "여행", "음악", "영화",
	"독서", "운동", "정원 가꾸기", "낚시",
	"바둑/장기", "드라마", "사진", "춤",
	"그림", "종교 활동", "봉사활동", "골프",
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// NormalizePhone validates a Korean mobile number and returns it in
// canonical 010-XXXX-XXXX form. Input may use hyphens, spaces, or no
// separators at all.
func NormalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", ValidationError{Field: "phone", Message: "phone number is required"}
	}
	m := phoneRegex.FindStringSubmatch(phone)
	if m == nil {
		return "", ValidationError{Field: "phone", Message: "phone number must be a 010 mobile number"}
	}
	return fmt.Sprintf("010-%s-%s", m[1], m[2]), nil
}

// ValidInterest reports whether the value is one of the offered topics.
func ValidInterest(interest string) bool {
	for _, opt := range InterestOptions {
		if opt == interest {
			return true
		}
	}
	return false
}

// ToggleInterest adds or removes an interest from the selection.
// Removal always succeeds; adding is refused once MaxInterests topics
// are already picked, in which case the selection is returned unchanged.
func ToggleInterest(selected []string, interest string) []string {
	for i, s := range selected {
		if s == interest {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if len(selected) >= MaxInterests {
		return selected
	}
	return append(selected, interest)
}

// ValidateInterests checks an onboarding interest selection: at least
// one topic, at most MaxInterests, all from the offered catalog.
func ValidateInterests(interests []string) error {
	if len(interests) == 0 {
		return ValidationError{Field: "interests", Message: "at least one interest must be selected"}
	}
	if len(interests) > MaxInterests {
		return ValidationError{Field: "interests", Message: fmt.Sprintf("at most %d interests may be selected", MaxInterests)}
	}
	for _, interest := range interests {
		if !ValidInterest(interest) {
			return ValidationError{Field: "interests", Message: fmt.Sprintf("unknown interest: %s", interest)}
		}
	}
	return nil
}

// ValidateAnswer checks a parent's answer text. Leading and trailing
// whitespace does not count toward the minimum length.
func ValidateAnswer(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "answer", Message: "answer is required"}
	}
	if utf8.RuneCountInString(text) < MinAnswerLength {
		return ValidationError{Field: "answer", Message: fmt.Sprintf("answer must be at least %d characters", MinAnswerLength)}
	}
	return nil
}

// ValidateFollowup checks a child's follow-up reply.
func ValidateFollowup(text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationError{Field: "followup", Message: "reply is required"}
	}
	return nil
}
