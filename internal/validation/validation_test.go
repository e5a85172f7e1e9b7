package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "exactly 8 characters",
			password: "12345678",
			wantErr:  false,
		},
		{
			name:     "too short",
			password: "1234567",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "korean name",
			input:   "김지은",
			wantErr: false,
		},
		{
			name:    "two korean characters",
			input:   "엄마",
			wantErr: false,
		},
		{
			name:    "single character",
			input:   "김",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "already canonical",
			input: "010-1234-5678",
			want:  "010-1234-5678",
		},
		{
			name:  "no separators",
			input: "01012345678",
			want:  "010-1234-5678",
		},
		{
			name:  "space separators",
			input: "010 1234 5678",
			want:  "010-1234-5678",
		},
		{
			name:  "surrounding whitespace",
			input: "  010-1234-5678  ",
			want:  "010-1234-5678",
		},
		{
			name:  "legacy ten digit number",
			input: "010-123-5678",
			want:  "010-123-5678",
		},
		{
			name:  "legacy ten digit without separators",
			input: "0101235678",
			want:  "010-123-5678",
		},
		{
			name:    "landline prefix",
			input:   "02-1234-5678",
			wantErr: true,
		},
		{
			name:    "too few digits",
			input:   "010-12-5678",
			wantErr: true,
		},
		{
			name:    "too many digits",
			input:   "010-12345-5678",
			wantErr: true,
		},
		{
			name:    "letters",
			input:   "010-abcd-efgh",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizePhone(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToggleInterest(t *testing.T) {
	t.Run("adds when under limit", func(t *testing.T) {
		got := ToggleInterest([]string{"요리"}, "여행")
		if len(got) != 2 || got[1] != "여행" {
			t.Errorf("expected [요리 여행], got %v", got)
		}
	})

	t.Run("removes existing selection", func(t *testing.T) {
		got := ToggleInterest([]string{"요리", "여행", "음악"}, "여행")
		if len(got) != 2 || got[0] != "요리" || got[1] != "음악" {
			t.Errorf("expected [요리 음악], got %v", got)
		}
	})

	t.Run("refuses to add past the limit", func(t *testing.T) {
		full := []string{"요리", "여행", "음악"}
		got := ToggleInterest(full, "영화")
		if len(got) != 3 {
			t.Errorf("expected selection to stay at %d, got %v", MaxInterests, got)
		}
	})

	t.Run("removal works at the limit", func(t *testing.T) {
		full := []string{"요리", "여행", "음악"}
		got := ToggleInterest(full, "음악")
		if len(got) != 2 {
			t.Errorf("expected 2 interests after removal, got %v", got)
		}
	})

	t.Run("adds to empty selection", func(t *testing.T) {
		got := ToggleInterest(nil, "독서")
		if len(got) != 1 || got[0] != "독서" {
			t.Errorf("expected [독서], got %v", got)
		}
	})
}

func TestValidateInterests(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		wantErr   bool
	}{
		{
			name:      "empty selection is rejected",
			interests: nil,
			wantErr:   true,
		},
		{
			name:      "single interest",
			interests: []string{"독서"},
			wantErr:   false,
		},
		{
			name:      "valid selection",
			interests: []string{"요리", "낚시", "골프"},
			wantErr:   false,
		},
		{
			name:      "too many",
			interests: []string{"요리", "낚시", "골프", "사진"},
			wantErr:   true,
		},
		{
			name:      "unknown topic",
			interests: []string{"스카이다이빙"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterests(tt.interests)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterests(%v) error = %v, wantErr %v", tt.interests, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name:    "long enough",
			text:    "어릴 때 할머니가 해주시던 김치찌개가 제일 기억에 남지",
			wantErr: false,
		},
		{
			name:    "exactly ten characters",
			text:    "1234567890",
			wantErr: false,
		},
		{
			name:    "ten korean characters",
			text:    "가나다라마바사아자차",
			wantErr: false,
		},
		{
			name:    "nine characters",
			text:    "123456789",
			wantErr: true,
		},
		{
			name:    "padding does not count",
			text:    "  짧은 답  ",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			text:    "     ",
			wantErr: true,
		},
		{
			name:    "empty",
			text:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnswer(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFollowup(t *testing.T) {
	if err := ValidateFollowup("고마워요 엄마!"); err != nil {
		t.Errorf("expected valid followup, got %v", err)
	}
	if err := ValidateFollowup("   "); err == nil {
		t.Error("expected error for blank followup")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "email", Message: "invalid email format"}
	if !strings.Contains(err.Error(), "email") {
		t.Errorf("error message should name the field: %q", err.Error())
	}
}
