package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"maeumbaedal/internal/service"
	"maeumbaedal/internal/validation"
)

// answerExamples prime the pump for parents who freeze at a blank
// textarea. Tapping one only pre-fills the form; the length check still
// applies on submit.
var answerExamples = []string{
	"그때를 생각하면 지금도 마음이 따뜻해진단다.",
	"네가 어렸을 때 일이 생각나는구나. 그때 우리는...",
	"쉽지 않은 시절이었지만 돌아보면 좋은 기억이 많아.",
}

// AnswerHandler serves the public, token-gated pages a parent reaches
// from a shared link. No login is involved; the access token in the URL
// is the only credential.
type AnswerHandler struct {
	questionService *service.QuestionService
	templates       *template.Template
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(questionService *service.QuestionService, templates *template.Template) *AnswerHandler {
	return &AnswerHandler{
		questionService: questionService,
		templates:       templates,
	}
}

// ShowAnswerForm renders the answer page behind a shared link. A bad id
// or token shows one generic invalid-link page; an already answered
// question shows the answer instead of the form.
func (h *AnswerHandler) ShowAnswerForm(w http.ResponseWriter, r *http.Request) {
	id, token, ok := answerLinkParams(r)
	if !ok {
		h.renderInvalidLink(w)
		return
	}

	question, err := h.questionService.GetForAnswer(id, token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load question", err)
		return
	}
	if question == nil {
		h.renderInvalidLink(w)
		return
	}

	if question.IsAnswered() {
		h.renderAlreadyAnswered(w, token)
		return
	}

	data := map[string]interface{}{
		"Title":     "질문에 답해주세요 - 마음배달",
		"Question":  question,
		"Token":     token,
		"MinLength": validation.MinAnswerLength,
		"Examples":  answerExamples,
	}
	if err := h.templates.ExecuteTemplate(w, "answer_form.tmpl", data); err != nil {
		log.Printf("Error rendering answer form template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowViewAnswer renders a single question with its answer behind the
// shared token, read-only.
func (h *AnswerHandler) ShowViewAnswer(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	idParam := r.URL.Query().Get("id")
	if token == "" || idParam == "" {
		h.renderInvalidLink(w)
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.renderInvalidLink(w)
		return
	}

	question, err := h.questionService.GetForAnswer(id, token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load question", err)
		return
	}
	if question == nil {
		h.renderInvalidLink(w)
		return
	}

	data := map[string]interface{}{
		"Title":     "답변 보기 - 마음배달",
		"Question":  question,
		"Token":     token,
		"ChildName": h.questionService.ChildName(question.ChildUserID),
	}
	if err := h.templates.ExecuteTemplate(w, "view_answer.tmpl", data); err != nil {
		log.Printf("Error rendering view answer template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// SubmitAnswer records the parent's answer from the public form
func (h *AnswerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("question_id"), 10, 64)
	if err != nil {
		h.renderInvalidLink(w)
		return
	}
	token := r.FormValue("token")
	answerText := r.FormValue("answer_text")

	if err := h.questionService.SubmitAnswer(id, token, answerText); err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			h.renderInvalidLink(w)
		case errors.Is(err, service.ErrAlreadyAnswered):
			h.renderAlreadyAnswered(w, token)
		default:
			var verr validation.ValidationError
			if errors.As(err, &verr) {
				question, loadErr := h.questionService.GetForAnswer(id, token)
				if loadErr != nil || question == nil {
					h.renderInvalidLink(w)
					return
				}
				data := map[string]interface{}{
					"Title":      "질문에 답해주세요 - 마음배달",
					"Question":   question,
					"Token":      token,
					"MinLength":  validation.MinAnswerLength,
					"Examples":   answerExamples,
					"Error":      "답변을 10자 이상 작성해주세요",
					"AnswerText": answerText,
				}
				if err := h.templates.ExecuteTemplate(w, "answer_form.tmpl", data); err != nil {
					log.Printf("Error rendering answer form template: %v", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to submit answer", err)
		}
		return
	}

	data := map[string]interface{}{
		"Title": "답변이 전달되었어요 - 마음배달",
		"Token": token,
	}
	if err := h.templates.ExecuteTemplate(w, "answer_complete.tmpl", data); err != nil {
		log.Printf("Error rendering answer complete template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowConversations renders the parent's view of the whole question
// thread behind their access token.
func (h *AnswerHandler) ShowConversations(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("t")
	if token == "" {
		h.renderInvalidLink(w)
		return
	}

	questions, err := h.questionService.ListConversation(token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load conversation", err)
		return
	}
	if len(questions) == 0 {
		h.renderInvalidLink(w)
		return
	}

	data := map[string]interface{}{
		"Title":     "우리의 대화 - 마음배달",
		"Questions": questions,
		"Token":     token,
		"ChildName": h.questionService.ChildName(questions[0].ChildUserID),
	}
	if err := h.templates.ExecuteTemplate(w, "conversations.tmpl", data); err != nil {
		log.Printf("Error rendering conversations template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *AnswerHandler) renderInvalidLink(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	data := map[string]interface{}{
		"Title": "링크를 확인해주세요 - 마음배달",
	}
	if err := h.templates.ExecuteTemplate(w, "invalid_link.tmpl", data); err != nil {
		log.Printf("Error rendering invalid link template: %v", err)
		http.Error(w, "Invalid link", http.StatusNotFound)
	}
}

func (h *AnswerHandler) renderAlreadyAnswered(w http.ResponseWriter, token string) {
	data := map[string]interface{}{
		"Title": "이미 답변하셨어요 - 마음배달",
		"Token": token,
	}
	if err := h.templates.ExecuteTemplate(w, "already_answered.tmpl", data); err != nil {
		log.Printf("Error rendering already answered template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// answerLinkParams extracts the question id and access token from an
// answer link's query string.
func answerLinkParams(r *http.Request) (int64, string, bool) {
	token := r.URL.Query().Get("t")
	idParam := r.URL.Query().Get("q")
	if token == "" || idParam == "" {
		return 0, "", false
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, token, true
}
