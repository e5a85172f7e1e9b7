package service

import (
	"context"
	"log"
	"maeumbaedal/internal/models"
	"maeumbaedal/internal/repository"
	"time"
)

// DeliveryService sends one question per day to each child at their
// preferred time slot. It drives the share/email fan-out; the child can
// also send manually from the dashboard at any time.
type DeliveryService struct {
	profileRepo  *repository.ProfileRepository
	questionRepo *repository.QuestionRepository
	settingsRepo *repository.SettingsRepository
	userRepo     *repository.UserRepository
	questions    *QuestionService
	email        *EmailService
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	profileRepo *repository.ProfileRepository,
	questionRepo *repository.QuestionRepository,
	settingsRepo *repository.SettingsRepository,
	userRepo *repository.UserRepository,
	questions *QuestionService,
	email *EmailService,
) *DeliveryService {
	return &DeliveryService{
		profileRepo:  profileRepo,
		questionRepo: questionRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		questions:    questions,
		email:        email,
	}
}

// Run ticks hourly and delivers questions to children whose preferred
// slot matches the current hour. It returns when the context is done.
func (s *DeliveryService) Run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("Daily question delivery loop started")

	for {
		select {
		case <-ctx.Done():
			log.Println("Daily question delivery loop stopped")
			return
		case now := <-ticker.C:
			if err := s.DeliverForHour(ctx, now); err != nil {
				log.Printf("Daily delivery pass failed: %v", err)
			}
		}
	}
}

// DeliverForHour sends today's question to every child whose preferred
// slot matches the hour of now. Children who already got a question today
// are skipped, so restarts and manual sends never cause doubles.
func (s *DeliveryService) DeliverForHour(ctx context.Context, now time.Time) error {
	if s.settingsRepo.IsDailySendPaused() {
		return nil
	}

	profiles, err := s.profileRepo.ListBySendHour(now.Local().Hour())
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return nil
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sent := 0
	for _, profile := range profiles {
		if err := s.deliverOne(ctx, profile, startOfDay); err != nil {
			log.Printf("Failed to deliver question to user %d: %v", profile.UserID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("Daily delivery pass complete: %d question(s) sent for hour %d", sent, now.Local().Hour())
	}
	return nil
}

func (s *DeliveryService) deliverOne(ctx context.Context, profile models.Profile, startOfDay time.Time) error {
	already, err := s.questionRepo.HasQuestionSince(profile.UserID, startOfDay)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	if !profile.HasParentContact() {
		return nil
	}

	templates, err := s.questions.SampleTemplates()
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		return nil
	}

	question, err := s.questions.SendQuestion(profile.UserID, templates[0].QuestionText)
	if err != nil {
		return err
	}

	if s.email != nil && s.email.IsEnabled() {
		user, err := s.userRepo.GetUserByID(profile.UserID)
		if err != nil || user == nil {
			log.Printf("Skipping delivery email for user %d: no account row", profile.UserID)
			return nil
		}
		parentNickname := profile.Name
		if profile.Onboarding != nil && profile.Onboarding.ParentNickname != "" {
			parentNickname = profile.Onboarding.ParentNickname
		}
		if err := s.email.SendDailyQuestionEmail(ctx, user.Email, profile.Name, parentNickname,
			question.QuestionText, s.questions.AnswerLink(question)); err != nil {
			log.Printf("Failed to send delivery email for user %d: %v", profile.UserID, err)
		}
	}

	return nil
}
