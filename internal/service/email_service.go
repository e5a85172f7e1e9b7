package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
	debug      bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string, debug bool) (*EmailService, error) {
	// If fromEmail is empty, create a disabled service
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{
			enabled: false,
			debug:   debug,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
		debug:      debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a password reset email with a reset link
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appBaseURL, resetToken)

	subject := "마음배달 비밀번호 재설정"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #f97316; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #fff7ed; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #f97316; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>비밀번호 재설정</h1>
		</div>
		<div class="content">
			<p>%s님, 안녕하세요.</p>
			<p>마음배달 계정의 비밀번호 재설정 요청을 받았습니다.</p>
			<p>아래 버튼을 눌러 비밀번호를 재설정해주세요:</p>
			<p style="text-align: center;">
				<a href="%s" class="button">비밀번호 재설정</a>
			</p>
			<p>또는 아래 링크를 브라우저에 붙여넣어주세요:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p><strong>이 링크는 1시간 후 만료됩니다.</strong></p>
			<p>본인이 요청하지 않았다면 이 메일을 무시하셔도 됩니다.</p>
		</div>
		<div class="footer">
			<p>마음배달에서 자동 발송된 메일입니다. 회신하지 마세요.</p>
		</div>
	</div>
</body>
</html>
`, toName, resetLink, resetLink)

	textBody := fmt.Sprintf(`%s님, 안녕하세요.

마음배달 계정의 비밀번호 재설정 요청을 받았습니다.

아래 링크를 눌러 비밀번호를 재설정해주세요:
%s

이 링크는 1시간 후 만료됩니다.

본인이 요청하지 않았다면 이 메일을 무시하셔도 됩니다.

---
마음배달에서 자동 발송된 메일입니다. 회신하지 마세요.
`, toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendDailyQuestionEmail notifies a child that today's question is ready
// to be shared with their parent. The email carries the parent's answer
// link so the child can forward it through any channel.
func (s *EmailService) SendDailyQuestionEmail(ctx context.Context, toEmail, childName, parentNickname, questionText, answerLink string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): daily question to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("오늘의 질문이 도착했어요 — %s님께 전해주세요", parentNickname)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: 'Apple SD Gothic Neo', 'Malgun Gothic', sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #f97316; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #fff7ed; padding: 30px; border-radius: 0 0 5px 5px; }
		.question { background-color: white; border-left: 4px solid #f97316; padding: 15px 20px; margin: 20px 0; font-size: 18px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #f97316; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>💌 오늘의 질문</h1>
		</div>
		<div class="content">
			<p>%s님, 안녕하세요.</p>
			<p>%s님께 보낼 오늘의 질문이 준비되었어요:</p>
			<div class="question">%s</div>
			<p>아래 답변 링크를 %s님께 전해주세요:</p>
			<p style="text-align: center;">
				<a href="%s" class="button">답변 링크 열기</a>
			</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
		</div>
		<div class="footer">
			<p>마음배달에서 자동 발송된 메일입니다. 회신하지 마세요.</p>
		</div>
	</div>
</body>
</html>
`, childName, parentNickname, questionText, parentNickname, answerLink, answerLink)

	textBody := fmt.Sprintf(`%s님, 안녕하세요.

%s님께 보낼 오늘의 질문이 준비되었어요:

"%s"

아래 답변 링크를 %s님께 전해주세요:
%s

---
마음배달에서 자동 발송된 메일입니다. 회신하지 마세요.
`, childName, parentNickname, questionText, parentNickname, answerLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s, to=%s, subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
