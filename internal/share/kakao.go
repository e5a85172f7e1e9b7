// Package share builds and sends KakaoTalk share messages for question
// invites and follow-up notices.
package share

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/oauth2"
)

const kakaoMemoURL = "https://kapi.kakao.com/v2/api/talk/memo/default/send"

// previewLimit caps how much of an answer or reply appears in a share
// message before it is cut with an ellipsis.
const previewLimit = 50

// Message is a Kakao "text" template object ready to send or to render
// into the share button on the page.
type Message struct {
	Text       string
	LinkURL    string
	ButtonText string
}

// KakaoClient sends share messages through the Kakao REST API. An
// unconfigured client degrades to logging, so local development works
// without Kakao credentials.
type KakaoClient struct {
	token      string
	appBaseURL string
	httpClient *http.Client
}

// NewKakaoClient creates a share client. An empty token leaves the
// client in logging-only mode.
func NewKakaoClient(token, appBaseURL string) *KakaoClient {
	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
		httpClient.Timeout = 10 * time.Second
	}
	return &KakaoClient{
		token:      token,
		appBaseURL: appBaseURL,
		httpClient: httpClient,
	}
}

// IsEnabled reports whether the client has Kakao credentials.
func (c *KakaoClient) IsEnabled() bool {
	return c.token != ""
}

// BuildQuestionInvite builds the share message a child sends alongside a
// new question's answer link.
func (c *KakaoClient) BuildQuestionInvite(parentNickname, questionText, answerLink string) Message {
	text := fmt.Sprintf("💌 %s님께 질문이 도착했어요!\n\n\"%s\"\n\n아래 버튼을 눌러 답변을 남겨주세요.",
		parentNickname, questionText)
	return Message{
		Text:       text,
		LinkURL:    answerLink,
		ButtonText: "답변하기",
	}
}

// BuildFollowupNotice builds the share message sent after the child
// leaves a follow-up reply. Long answers and replies are truncated so the
// message stays readable in the chat list.
func (c *KakaoClient) BuildFollowupNotice(parentNickname, questionText, answerText, followupText, conversationLink string) Message {
	text := fmt.Sprintf("💬 %s님, 답변에 새 댓글이 달렸어요!\n\n질문: %s\n답변: %s\n댓글: %s",
		parentNickname, questionText, truncate(answerText, previewLimit), truncate(followupText, previewLimit))
	return Message{
		Text:       text,
		LinkURL:    conversationLink,
		ButtonText: "대화 보기",
	}
}

// Send posts a message to the Kakao memo API. In logging-only mode the
// message is logged and nil is returned, so callers never branch on
// configuration.
func (c *KakaoClient) Send(ctx context.Context, msg Message) error {
	if !c.IsEnabled() {
		log.Printf("Kakao share disabled, skipping message: link=%s", msg.LinkURL)
		return nil
	}

	templateObject := map[string]interface{}{
		"object_type": "text",
		"text":        msg.Text,
		"link": map[string]string{
			"web_url":        msg.LinkURL,
			"mobile_web_url": msg.LinkURL,
		},
		"button_title": msg.ButtonText,
	}
	payload, err := json.Marshal(templateObject)
	if err != nil {
		return fmt.Errorf("failed to encode template object: %w", err)
	}

	form := url.Values{"template_object": []string{string(payload)}}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, kakaoMemoURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build Kakao request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to call Kakao API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("Kakao API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	log.Printf("Kakao share message sent: link=%s", msg.LinkURL)
	return nil
}

// truncate cuts s to at most limit runes, appending an ellipsis when
// anything was dropped.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
