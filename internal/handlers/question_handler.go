package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"maeumbaedal/internal/service"
	"maeumbaedal/internal/share"
	"maeumbaedal/internal/validation"
)

// QuestionHandler covers the child-facing question lifecycle: picking a
// question, sending it, reading the answer, and replying once.
type QuestionHandler struct {
	questionService *service.QuestionService
	profileService  *service.ProfileService
	kakao           *share.KakaoClient
	middleware      *Middleware
	templates       *template.Template
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *service.QuestionService, profileService *service.ProfileService, kakao *share.KakaoClient, middleware *Middleware, templates *template.Template) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		profileService:  profileService,
		kakao:           kakao,
		middleware:      middleware,
		templates:       templates,
	}
}

// ShowSelector renders the question picker with a few random suggestions
// and a free-text field.
func (h *QuestionHandler) ShowSelector(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	if profile == nil {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	templates, err := h.questionService.SampleTemplates()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to sample templates", err)
		return
	}

	data := map[string]interface{}{
		"Title":     "오늘의 질문 고르기 - 마음배달",
		"Profile":   profile,
		"Templates": templates,
		"CSRFToken": h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "question_selector.tmpl", data); err != nil {
		log.Printf("Error rendering question selector template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// SendQuestion creates the question and shows the share screen with the
// parent's answer link.
func (h *QuestionHandler) SendQuestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	// A written question wins over a picked template
	questionText := strings.TrimSpace(r.FormValue("custom_question_text"))
	if questionText == "" {
		questionText = r.FormValue("question_text")
	}

	question, err := h.questionService.SendQuestion(user.ID, questionText)
	if err != nil {
		if errors.Is(err, service.ErrNoParentContact) {
			http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
			return
		}
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			http.Redirect(w, r, "/questions/new", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to send question", err)
		return
	}

	relationship, err := h.profileService.GetRelationship(user.ID)
	if err != nil {
		log.Printf("Failed to load relationship for user %d: %v", user.ID, err)
	}
	parentNickname := parentNicknameFor(profile, relationship)

	answerLink := h.questionService.AnswerLink(question)
	invite := h.kakao.BuildQuestionInvite(parentNickname, question.QuestionText, answerLink)

	if h.kakao.IsEnabled() {
		if err := h.kakao.Send(r.Context(), invite); err != nil {
			log.Printf("Failed to send Kakao invite for question %d: %v", question.ID, err)
		}
	}

	data := map[string]interface{}{
		"Title":          "질문 보내기 완료 - 마음배달",
		"Question":       question,
		"ParentNickname": parentNickname,
		"AnswerLink":     answerLink,
		"ShareMessage":   invite,
	}

	if err := h.templates.ExecuteTemplate(w, "question_sent.tmpl", data); err != nil {
		log.Printf("Error rendering question sent template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowQuestion renders the child's view of one question, including the
// answer and the follow-up form when available.
func (h *QuestionHandler) ShowQuestion(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		return
	}

	question, err := h.questionService.GetForChild(id, user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load question", err)
		return
	}
	if question == nil {
		respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		return
	}

	relationship, err := h.profileService.GetRelationship(user.ID)
	if err != nil {
		log.Printf("Failed to load relationship for user %d: %v", user.ID, err)
	}

	data := map[string]interface{}{
		"Title":          "답변 보기 - 마음배달",
		"Question":       question,
		"ParentNickname": parentNicknameFor(profile, relationship),
		"CanFollowUp":    question.CanFollowUp(user.ID),
		"AnswerLink":     h.questionService.AnswerLink(question),
		"CSRFToken":      h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "question_detail.tmpl", data); err != nil {
		log.Printf("Error rendering question detail template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowAllConversations renders the child's complete question history as
// one thread.
func (h *QuestionHandler) ShowAllConversations(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	questions, err := h.questionService.ListQuestions(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load questions", err)
		return
	}

	relationship, err := h.profileService.GetRelationship(user.ID)
	if err != nil {
		log.Printf("Failed to load relationship for user %d: %v", user.ID, err)
	}

	data := map[string]interface{}{
		"Title":          "전체 대화 - 마음배달",
		"Questions":      questions,
		"ParentNickname": parentNicknameFor(profile, relationship),
	}

	if err := h.templates.ExecuteTemplate(w, "all_conversations.tmpl", data); err != nil {
		log.Printf("Error rendering all conversations template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// SubmitFollowup records the child's one reply and notifies the parent
func (h *QuestionHandler) SubmitFollowup(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	question, err := h.questionService.SubmitFollowup(id, user.ID, r.FormValue("followup_text"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		case errors.Is(err, service.ErrNotAnswered), errors.Is(err, service.ErrFollowupExists):
			http.Redirect(w, r, "/questions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
		default:
			var verr validation.ValidationError
			if errors.As(err, &verr) {
				http.Redirect(w, r, "/questions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to save follow-up", err)
		}
		return
	}

	if h.kakao.IsEnabled() {
		relationship, relErr := h.profileService.GetRelationship(user.ID)
		if relErr != nil {
			log.Printf("Failed to load relationship for user %d: %v", user.ID, relErr)
		}
		notice := h.kakao.BuildFollowupNotice(
			parentNicknameFor(profile, relationship),
			question.QuestionText,
			question.AnswerText,
			question.ChildFollowupText,
			h.questionService.ConversationLink(question),
		)
		if err := h.kakao.Send(r.Context(), notice); err != nil {
			log.Printf("Failed to send Kakao follow-up notice for question %d: %v", question.ID, err)
		}
	}

	http.Redirect(w, r, "/questions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// CreateDiscovery saves something the child learned from an answer
func (h *QuestionHandler) CreateDiscovery(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	if _, err := h.questionService.RecordDiscovery(user.ID, id, r.FormValue("title"), r.FormValue("content"), r.FormValue("tag")); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			respondWithError(w, http.StatusNotFound, "Question not found", "", nil)
			return
		}
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			http.Redirect(w, r, "/questions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to save discovery", err)
		return
	}

	http.Redirect(w, r, "/questions/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}
