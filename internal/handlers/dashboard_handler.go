package handlers

import (
	"html/template"
	"log"
	"net/http"

	"maeumbaedal/internal/models"
	"maeumbaedal/internal/service"
)

// DashboardHandler renders the child's home screen
type DashboardHandler struct {
	questionService *service.QuestionService
	profileService  *service.ProfileService
	middleware      *Middleware
	templates       *template.Template
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(questionService *service.QuestionService, profileService *service.ProfileService, middleware *Middleware, templates *template.Template) *DashboardHandler {
	return &DashboardHandler{
		questionService: questionService,
		profileService:  profileService,
		middleware:      middleware,
		templates:       templates,
	}
}

// Dashboard renders stats, the question history, and saved discoveries
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	stats, err := h.questionService.Stats(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load dashboard stats", err)
		return
	}

	questions, err := h.questionService.ListQuestions(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load questions", err)
		return
	}

	discoveries, err := h.questionService.ListDiscoveries(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load discoveries", err)
		return
	}

	relationship, err := h.profileService.GetRelationship(user.ID)
	if err != nil {
		log.Printf("Failed to load relationship for user %d: %v", user.ID, err)
	}

	parentNickname := parentNicknameFor(profile, relationship)

	data := map[string]interface{}{
		"Title":          "마음배달",
		"User":           user,
		"Profile":        profile,
		"ParentNickname": parentNickname,
		"Stats":          stats,
		"Questions":      questions,
		"Discoveries":    discoveries,
		"CSRFToken":      h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "dashboard.tmpl", data); err != nil {
		log.Printf("Error rendering dashboard template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// parentNicknameFor picks the display name for the parent, preferring the
// relationship row over the onboarding payload.
func parentNicknameFor(profile *models.Profile, relationship *models.ParentChildRelationship) string {
	if relationship != nil && relationship.ParentName != "" {
		return relationship.ParentName
	}
	if profile.Onboarding != nil && profile.Onboarding.ParentNickname != "" {
		return profile.Onboarding.ParentNickname
	}
	return "부모님"
}
