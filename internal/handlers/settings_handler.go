package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"maeumbaedal/internal/models"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/service"
	"maeumbaedal/internal/validation"
)

// SettingsHandler serves the settings screen and the dev tools section
type SettingsHandler struct {
	profileService     *service.ProfileService
	maintenanceService *service.MaintenanceService
	authService        *service.AuthService
	settingsRepo       *repository.SettingsRepository
	middleware         *Middleware
	templates          *template.Template
	devToolsEnabled    bool
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	profileService *service.ProfileService,
	maintenanceService *service.MaintenanceService,
	authService *service.AuthService,
	settingsRepo *repository.SettingsRepository,
	middleware *Middleware,
	templates *template.Template,
	devToolsEnabled bool,
) *SettingsHandler {
	return &SettingsHandler{
		profileService:     profileService,
		maintenanceService: maintenanceService,
		authService:        authService,
		settingsRepo:       settingsRepo,
		middleware:         middleware,
		templates:          templates,
		devToolsEnabled:    devToolsEnabled,
	}
}

// ShowSettings renders the settings form
func (h *SettingsHandler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	h.renderSettings(w, r, "", "")
}

// SaveSettings handles the settings form submission
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
		return
	}

	err := h.profileService.SaveSettings(
		user.ID,
		r.FormValue("name"),
		r.FormValue("preferred_time"),
		r.FormValue("parent_name"),
		r.FormValue("parent_phone"),
		r.FormValue("relationship"),
	)
	if err != nil {
		var verr validation.ValidationError
		if errors.As(err, &verr) {
			h.renderSettings(w, r, verr.Message, "")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to save settings", err)
		return
	}

	h.renderSettings(w, r, "", "저장되었습니다")
}

// ToggleDailySend pauses or resumes the daily delivery loop (dev tools)
func (h *SettingsHandler) ToggleDailySend(w http.ResponseWriter, r *http.Request) {
	if !h.devToolsEnabled {
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
		return
	}

	paused := h.settingsRepo.IsDailySendPaused()
	if err := h.settingsRepo.SetDailySendPaused(!paused); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to toggle daily send", err)
		return
	}

	log.Printf("Daily send paused set to %v", !paused)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// ClearMyData wipes the signed-in user's account and everything attached
// to it, then logs them out (dev tools).
func (h *SettingsHandler) ClearMyData(w http.ResponseWriter, r *http.Request) {
	if !h.devToolsEnabled {
		respondWithError(w, http.StatusNotFound, "Not found", "", nil)
		return
	}

	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.maintenanceService.ClearUserData(user.ID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to clear user data", err)
		return
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *SettingsHandler) renderSettings(w http.ResponseWriter, r *http.Request, errorMsg, successMsg string) {
	user := GetUserFromContext(r.Context())
	profile := GetProfileFromContext(r.Context())
	if user == nil || profile == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	relationship, err := h.profileService.GetRelationship(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load relationship", err)
		return
	}

	data := map[string]interface{}{
		"Title":           "설정 - 마음배달",
		"User":            user,
		"Profile":         profile,
		"Relationship":    relationship,
		"Relationships":   models.RelationshipOptions,
		"Error":           errorMsg,
		"Success":         successMsg,
		"DevToolsEnabled": h.devToolsEnabled,
		"DailySendPaused": h.settingsRepo.IsDailySendPaused(),
		"CSRFToken":       h.middleware.CSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "settings.tmpl", data); err != nil {
		log.Printf("Error rendering settings template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
