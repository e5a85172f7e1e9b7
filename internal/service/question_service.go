package service

import (
	"errors"
	"fmt"
	"maeumbaedal/internal/models"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/validation"
	"math/rand"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNoParentContact  = errors.New("parent contact not set")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrNotAnswered      = errors.New("question not answered yet")
	ErrFollowupExists   = errors.New("follow-up already sent")
)

// SelectorSize is how many template suggestions the question picker shows.
const SelectorSize = 3

// DashboardStats summarizes a child's activity for the dashboard header.
type DashboardStats struct {
	TotalQuestions    int
	AnsweredQuestions int
	StreakDays        int
}

// QuestionService handles the question lifecycle: picking a template,
// sending, the parent's answer, and the child's follow-up.
type QuestionService struct {
	questionRepo  *repository.QuestionRepository
	templateRepo  *repository.TemplateRepository
	profileRepo   *repository.ProfileRepository
	discoveryRepo *repository.DiscoveryRepository
	appBaseURL    string
}

// NewQuestionService creates a new question service
func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	templateRepo *repository.TemplateRepository,
	profileRepo *repository.ProfileRepository,
	discoveryRepo *repository.DiscoveryRepository,
	appBaseURL string,
) *QuestionService {
	return &QuestionService{
		questionRepo:  questionRepo,
		templateRepo:  templateRepo,
		profileRepo:   profileRepo,
		discoveryRepo: discoveryRepo,
		appBaseURL:    appBaseURL,
	}
}

// SampleTemplates returns a random selection of active question templates
// for the picker. Fewer than SelectorSize templates are returned only when
// the catalog itself is smaller.
func (s *QuestionService) SampleTemplates() ([]models.QuestionTemplate, error) {
	templates, err := s.templateRepo.GetActiveTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	rand.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})

	if len(templates) > SelectorSize {
		templates = templates[:SelectorSize]
	}
	return templates, nil
}

// SendQuestion creates a question addressed to the child's parent. The
// child must have completed onboarding with a parent contact first.
func (s *QuestionService) SendQuestion(childUserID int64, questionText string) (*models.Question, error) {
	if strings.TrimSpace(questionText) == "" {
		return nil, validation.ValidationError{Field: "question", Message: "question text is required"}
	}

	profile, err := s.profileRepo.GetProfileByUserID(childUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil || !profile.HasParentContact() {
		return nil, ErrNoParentContact
	}

	question, err := s.questionRepo.CreateQuestion(childUserID, questionText)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return question, nil
}

// AnswerLink builds the tokenized answer URL that gets shared with the
// parent.
func (s *QuestionService) AnswerLink(q *models.Question) string {
	return fmt.Sprintf("%s/answer?q=%d&t=%s", s.appBaseURL, q.ID, url.QueryEscape(q.ParentAccessToken))
}

// ConversationLink builds the parent-facing conversation thread URL.
func (s *QuestionService) ConversationLink(q *models.Question) string {
	return fmt.Sprintf("%s/conversations?t=%s", s.appBaseURL, url.QueryEscape(q.ParentAccessToken))
}

// GetForAnswer loads the question behind a tokenized answer link. A nil
// question means the link is invalid; callers show one generic message
// without distinguishing a bad id from a bad token.
func (s *QuestionService) GetForAnswer(id int64, token string) (*models.Question, error) {
	return s.questionRepo.GetByIDAndToken(id, token)
}

// SubmitAnswer validates and records the parent's answer. Each question
// accepts exactly one answer; later submissions fail with
// ErrAlreadyAnswered.
func (s *QuestionService) SubmitAnswer(id int64, token, answerText string) error {
	if err := validation.ValidateAnswer(answerText); err != nil {
		return err
	}

	question, err := s.questionRepo.GetByIDAndToken(id, token)
	if err != nil {
		return fmt.Errorf("failed to load question: %w", err)
	}
	if question == nil {
		return ErrQuestionNotFound
	}
	if question.IsAnswered() {
		return ErrAlreadyAnswered
	}

	updated, err := s.questionRepo.SubmitAnswer(id, token, answerText)
	if err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}
	if !updated {
		// Lost the race with a concurrent submission
		return ErrAlreadyAnswered
	}

	return nil
}

// GetForChild loads a question the child owns, for the answer detail view.
func (s *QuestionService) GetForChild(id, childUserID int64) (*models.Question, error) {
	return s.questionRepo.GetByIDForChild(id, childUserID)
}

// SubmitFollowup records the child's one short reply to an answered
// question.
func (s *QuestionService) SubmitFollowup(id, childUserID int64, followupText string) (*models.Question, error) {
	if err := validation.ValidateFollowup(followupText); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByIDForChild(id, childUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	if !question.IsAnswered() {
		return nil, ErrNotAnswered
	}
	if question.HasFollowup() {
		return nil, ErrFollowupExists
	}

	updated, err := s.questionRepo.SetFollowup(id, childUserID, followupText)
	if err != nil {
		return nil, fmt.Errorf("failed to save follow-up: %w", err)
	}
	if !updated {
		return nil, ErrFollowupExists
	}

	return s.questionRepo.GetByIDForChild(id, childUserID)
}

// ListQuestions returns the child's question history, newest first.
func (s *QuestionService) ListQuestions(childUserID int64) ([]models.Question, error) {
	return s.questionRepo.ListByChild(childUserID)
}

// ListConversation returns every question behind an access token, for the
// parent-facing thread view.
func (s *QuestionService) ListConversation(token string) ([]models.Question, error) {
	return s.questionRepo.ListByToken(token)
}

// Stats computes the dashboard counters, including the consecutive-day
// sending streak.
func (s *QuestionService) Stats(childUserID int64) (*DashboardStats, error) {
	total, answered, err := s.questionRepo.CountByChild(childUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	dates, err := s.questionRepo.SentDates(childUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sent dates: %w", err)
	}

	return &DashboardStats{
		TotalQuestions:    total,
		AnsweredQuestions: answered,
		StreakDays:        streakFromDates(dates, time.Now()),
	}, nil
}

// streakFromDates counts consecutive days with at least one question
// sent, walking backwards from today. A streak survives until a full day
// is skipped: sending yesterday but not yet today still counts.
func streakFromDates(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d.Local().Format("2006-01-02")] = true
	}

	day := now
	if !seen[day.Format("2006-01-02")] {
		// No question today yet; the streak may still run through yesterday
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for seen[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ChildName returns the sender's display name for parent-facing pages.
func (s *QuestionService) ChildName(childUserID int64) string {
	profile, err := s.profileRepo.GetProfileByUserID(childUserID)
	if err != nil || profile == nil || profile.Name == "" {
		return "자녀"
	}
	return profile.Name
}

// RecordDiscovery stores something the child learned from an answer. The
// tag is an optional free-form label for the gallery.
func (s *QuestionService) RecordDiscovery(childUserID, questionID int64, title, content, tag string) (*models.Discovery, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, validation.ValidationError{Field: "title", Message: "title is required"}
	}
	if content == "" {
		return nil, validation.ValidationError{Field: "content", Message: "content is required"}
	}

	question, err := s.questionRepo.GetByIDForChild(questionID, childUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	return s.discoveryRepo.CreateDiscovery(childUserID, &questionID, title, content, strings.TrimSpace(tag))
}

// ListDiscoveries returns the child's saved discoveries, newest first.
func (s *QuestionService) ListDiscoveries(childUserID int64) ([]models.Discovery, error) {
	return s.discoveryRepo.ListByChild(childUserID)
}
