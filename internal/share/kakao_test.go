package share

import (
	"context"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{
			name:  "short string unchanged",
			input: "짧은 답변",
			limit: 50,
			want:  "짧은 답변",
		},
		{
			name:  "exactly at limit unchanged",
			input: strings.Repeat("가", 50),
			limit: 50,
			want:  strings.Repeat("가", 50),
		},
		{
			name:  "over limit gets ellipsis",
			input: strings.Repeat("가", 51),
			limit: 50,
			want:  strings.Repeat("가", 50) + "...",
		},
		{
			name:  "empty string",
			input: "",
			limit: 50,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.limit); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

func TestBuildQuestionInvite(t *testing.T) {
	client := NewKakaoClient("", "http://localhost:8080")

	msg := client.BuildQuestionInvite("엄마", "어릴 때 가장 좋아하던 음식은 무엇인가요?", "http://localhost:8080/answer?q=1&t=abc")

	if !strings.Contains(msg.Text, "엄마님께 질문이 도착했어요") {
		t.Errorf("invite text missing greeting: %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "어릴 때 가장 좋아하던 음식은 무엇인가요?") {
		t.Errorf("invite text missing question: %q", msg.Text)
	}
	if msg.ButtonText != "답변하기" {
		t.Errorf("unexpected button text: %q", msg.ButtonText)
	}
	if msg.LinkURL != "http://localhost:8080/answer?q=1&t=abc" {
		t.Errorf("unexpected link: %q", msg.LinkURL)
	}
}

func TestBuildFollowupNotice(t *testing.T) {
	client := NewKakaoClient("", "http://localhost:8080")

	longAnswer := strings.Repeat("답", 80)
	msg := client.BuildFollowupNotice("엄마", "질문 내용", longAnswer, "고마워요!", "http://localhost:8080/conversations?t=abc")

	if !strings.Contains(msg.Text, strings.Repeat("답", 50)+"...") {
		t.Errorf("long answer should be truncated to 50 runes: %q", msg.Text)
	}
	if strings.Contains(msg.Text, strings.Repeat("답", 51)) {
		t.Errorf("answer preview exceeds limit: %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "고마워요!") {
		t.Errorf("followup text missing: %q", msg.Text)
	}
	if msg.ButtonText != "대화 보기" {
		t.Errorf("unexpected button text: %q", msg.ButtonText)
	}
}

func TestSendDisabledIsNoop(t *testing.T) {
	client := NewKakaoClient("", "http://localhost:8080")

	msg := client.BuildQuestionInvite("엄마", "질문", "http://localhost:8080/answer?q=1&t=abc")
	if err := client.Send(context.Background(), msg); err != nil {
		t.Errorf("disabled client should not error: %v", err)
	}
}

func TestIsEnabled(t *testing.T) {
	if NewKakaoClient("", "base").IsEnabled() {
		t.Error("client without token should be disabled")
	}
	if !NewKakaoClient("token", "base").IsEnabled() {
		t.Error("client with token should be enabled")
	}
}
