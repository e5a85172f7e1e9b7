package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"maeumbaedal/internal/database"
	"maeumbaedal/internal/models"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/validation"
)

// setupQuestionService builds a question service backed by a throwaway
// SQLite database with the real migrations applied, plus a child account
// that has finished onboarding.
func setupQuestionService(t *testing.T) (*QuestionService, int64) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	user, err := userRepo.CreateUser("child@example.com", "hash", "김민지")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	profileRepo := repository.NewProfileRepository(db)
	_, err = profileRepo.CreateProfile(user.ID, models.RoleChild, "김민지", "010-1234-5678", models.TimeMorning, &models.OnboardingData{
		ParentNickname: "어머니",
		ParentContact:  "010-8765-4321",
		Interests:      []string{"요리", "여행"},
		PreferredTime:  models.TimeMorning,
	})
	if err != nil {
		t.Fatalf("Failed to create profile: %v", err)
	}

	svc := NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewTemplateRepository(db),
		profileRepo,
		repository.NewDiscoveryRepository(db),
		"http://localhost:8080",
	)
	return svc, user.ID
}

func TestSendAndAnswerQuestion(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, childID := setupQuestionService(t)

	question, err := svc.SendQuestion(childID, "어머니의 어린 시절 꿈은 무엇이었나요?")
	if err != nil {
		t.Fatalf("SendQuestion failed: %v", err)
	}
	if question.ParentAccessToken == "" {
		t.Error("Question should have an access token")
	}
	if question.Status != models.StatusSent {
		t.Errorf("Status = %q, want %q", question.Status, models.StatusSent)
	}

	// Wrong token must not reach the question
	loaded, err := svc.GetForAnswer(question.ID, "not-the-token")
	if err != nil {
		t.Fatalf("GetForAnswer failed: %v", err)
	}
	if loaded != nil {
		t.Error("Question should not load with a wrong token")
	}

	// Too-short answers are rejected before touching the database
	err = svc.SubmitAnswer(question.ID, question.ParentAccessToken, "짧아요")
	var validationErr validation.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected validation error for short answer, got %v", err)
	}

	answer := "선생님이 되는 게 꿈이었단다. 아이들을 가르치는 게 좋았거든."
	if err := svc.SubmitAnswer(question.ID, question.ParentAccessToken, answer); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	loaded, err = svc.GetForAnswer(question.ID, question.ParentAccessToken)
	if err != nil {
		t.Fatalf("GetForAnswer failed: %v", err)
	}
	if !loaded.IsAnswered() {
		t.Error("Question should be answered")
	}
	if loaded.AnswerText != answer {
		t.Errorf("AnswerText = %q, want %q", loaded.AnswerText, answer)
	}
	if loaded.AnsweredAt == nil {
		t.Error("AnsweredAt should be set")
	}

	// Answers are one-shot
	err = svc.SubmitAnswer(question.ID, question.ParentAccessToken, "두 번째 답변은 거절되어야 합니다")
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Errorf("Expected ErrAlreadyAnswered, got %v", err)
	}
}

func TestSendQuestionRequiresParentContact(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _ := setupQuestionService(t)

	// A second account with no profile at all
	_, err := svc.SendQuestion(9999, "이 질문은 보내질 수 없어요")
	if !errors.Is(err, ErrNoParentContact) {
		t.Errorf("Expected ErrNoParentContact, got %v", err)
	}
}

func TestFollowupFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, childID := setupQuestionService(t)

	question, err := svc.SendQuestion(childID, "요즘 가장 즐거운 일은 무엇인가요?")
	if err != nil {
		t.Fatalf("SendQuestion failed: %v", err)
	}

	// Follow-up before the answer arrives is rejected
	_, err = svc.SubmitFollowup(question.ID, childID, "벌써 궁금해요!")
	if !errors.Is(err, ErrNotAnswered) {
		t.Errorf("Expected ErrNotAnswered, got %v", err)
	}

	err = svc.SubmitAnswer(question.ID, question.ParentAccessToken, "아침마다 뒷산을 걷는 게 제일 즐겁단다.")
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	updated, err := svc.SubmitFollowup(question.ID, childID, "다음에 같이 걸어요!")
	if err != nil {
		t.Fatalf("SubmitFollowup failed: %v", err)
	}
	if !updated.HasFollowup() {
		t.Error("Question should have a follow-up")
	}
	if updated.ChildFollowupSentAt == nil {
		t.Error("ChildFollowupSentAt should be set")
	}

	// Only one follow-up per question
	_, err = svc.SubmitFollowup(question.ID, childID, "한 번 더요?")
	if !errors.Is(err, ErrFollowupExists) {
		t.Errorf("Expected ErrFollowupExists, got %v", err)
	}

	// Another account cannot follow up on this question
	_, err = svc.SubmitFollowup(question.ID, childID+1, "남의 질문이에요")
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("Expected ErrQuestionNotFound, got %v", err)
	}
}

func TestStatsCountsQuestions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, childID := setupQuestionService(t)

	for _, text := range []string{
		"어릴 적 살던 동네는 어떤 곳이었나요?",
		"가장 기억에 남는 여행은 언제였나요?",
	} {
		if _, err := svc.SendQuestion(childID, text); err != nil {
			t.Fatalf("SendQuestion failed: %v", err)
		}
	}

	questions, err := svc.ListQuestions(childID)
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(questions))
	}

	if err := svc.SubmitAnswer(questions[0].ID, questions[0].ParentAccessToken, "살구나무가 많던 조용한 동네였단다."); err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}

	stats, err := svc.Stats(childID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", stats.TotalQuestions)
	}
	if stats.AnsweredQuestions != 1 {
		t.Errorf("AnsweredQuestions = %d, want 1", stats.AnsweredQuestions)
	}
	if stats.StreakDays != 1 {
		t.Errorf("StreakDays = %d, want 1", stats.StreakDays)
	}
}

func TestRecordDiscovery(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, childID := setupQuestionService(t)

	question, err := svc.SendQuestion(childID, "처음 해본 요리는 무엇이었나요?")
	if err != nil {
		t.Fatalf("SendQuestion failed: %v", err)
	}

	discovery, err := svc.RecordDiscovery(childID, question.ID, "엄마의 첫 요리", "어머니가 열두 살에 처음 김치찌개를 끓이셨다는 걸 알게 됐다", "음식")
	if err != nil {
		t.Fatalf("RecordDiscovery failed: %v", err)
	}
	if discovery.ID == 0 {
		t.Error("Discovery should have an ID")
	}

	discoveries, err := svc.ListDiscoveries(childID)
	if err != nil {
		t.Fatalf("ListDiscoveries failed: %v", err)
	}
	if len(discoveries) != 1 {
		t.Fatalf("Expected 1 discovery, got %d", len(discoveries))
	}
	if discoveries[0].Title != "엄마의 첫 요리" {
		t.Errorf("Title = %q, want %q", discoveries[0].Title, "엄마의 첫 요리")
	}
	if discoveries[0].Tag != "음식" {
		t.Errorf("Tag = %q, want %q", discoveries[0].Tag, "음식")
	}
	if discoveries[0].QuestionID == nil || *discoveries[0].QuestionID != question.ID {
		t.Errorf("QuestionID = %v, want %d", discoveries[0].QuestionID, question.ID)
	}

	// Blank title and blank content are both rejected
	if _, err := svc.RecordDiscovery(childID, question.ID, "   ", "내용은 있어요", ""); err == nil {
		t.Error("Expected error for blank discovery title")
	}
	if _, err := svc.RecordDiscovery(childID, question.ID, "제목은 있어요", "   ", ""); err == nil {
		t.Error("Expected error for blank discovery content")
	}
}
