package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"maeumbaedal/internal/security"
	"maeumbaedal/internal/service"
	"maeumbaedal/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	templates            *template.Template
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, templates *template.Template, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		templates:            templates,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// Home renders the landing page, or sends signed-in users to the dashboard
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	data := map[string]interface{}{
		"Title": "마음배달 - 매일 한 번, 부모님과 마음을 나누세요",
	}
	if err := h.templates.ExecuteTemplate(w, "landing.tmpl", data); err != nil {
		log.Printf("Error rendering landing template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	// Check if already logged in
	if cookie, err := r.Cookie("session_id"); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	data := map[string]interface{}{
		"Title":          "로그인 - 마음배달",
		"OAuthProviders": h.oauthProviderViews(),
	}

	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(email, password)
	if err != nil {
		// Re-render login with error
		data := map[string]interface{}{
			"Title":          "로그인 - 마음배달",
			"Error":          "이메일 또는 비밀번호가 올바르지 않습니다",
			"Email":          email,
			"OAuthProviders": h.oauthProviderViews(),
		}
		if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
			log.Printf("Error rendering login template: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	data := map[string]interface{}{
		"Title":          "회원가입 - 마음배달",
		"OAuthProviders": h.oauthProviderViews(),
	}

	if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
		log.Printf("Error rendering register template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	_, err := h.authService.Register(email, password, name)
	if err != nil {
		data := map[string]interface{}{
			"Title":          "회원가입 - 마음배달",
			"Error":          registerErrorMessage(err),
			"Email":          email,
			"Name":           name,
			"OAuthProviders": h.oauthProviderViews(),
		}
		if err := h.templates.ExecuteTemplate(w, "register.tmpl", data); err != nil {
			log.Printf("Error rendering register template: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Auto-login after registration; new users land in onboarding
	session, _, err := h.authService.Login(email, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowForgotPassword renders the password reset request form
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "비밀번호 찾기 - 마음배달",
	}
	if err := h.templates.ExecuteTemplate(w, "forgot_password.tmpl", data); err != nil {
		log.Printf("Error rendering forgot password template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ForgotPassword handles the password reset request. The response never
// reveals whether the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, email); err != nil {
		log.Printf("Password reset request failed for %s: %v", email, err)
	}

	data := map[string]interface{}{
		"Title":   "비밀번호 찾기 - 마음배달",
		"Message": "입력하신 이메일로 재설정 링크를 보냈습니다. 메일함을 확인해주세요.",
	}
	if err := h.templates.ExecuteTemplate(w, "forgot_password.tmpl", data); err != nil {
		log.Printf("Error rendering forgot password template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ShowResetPassword renders the new-password form behind an emailed token
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	valid, err := h.authService.ValidatePasswordResetToken(token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to validate reset token", err)
		return
	}

	data := map[string]interface{}{
		"Title": "비밀번호 재설정 - 마음배달",
		"Token": token,
	}
	if !valid {
		data["Error"] = "링크가 만료되었거나 이미 사용되었습니다. 다시 요청해주세요."
	}

	if err := h.templates.ExecuteTemplate(w, "reset_password.tmpl", data); err != nil {
		log.Printf("Error rendering reset password template: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ResetPassword handles the new-password form submission
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")

	if err := h.authService.ResetPassword(token, password); err != nil {
		data := map[string]interface{}{
			"Title": "비밀번호 재설정 - 마음배달",
			"Token": token,
			"Error": resetErrorMessage(err),
		}
		if err := h.templates.ExecuteTemplate(w, "reset_password.tmpl", data); err != nil {
			log.Printf("Error rendering reset password template: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// registerErrorMessage maps registration failures to user-facing copy
func registerErrorMessage(err error) string {
	if errors.Is(err, service.ErrEmailTaken) {
		return "이미 가입된 이메일입니다"
	}
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		switch verr.Field {
		case "email":
			return "올바른 이메일 주소를 입력해주세요"
		case "password":
			return "비밀번호는 8자 이상이어야 합니다"
		case "name":
			return "이름을 2자 이상 입력해주세요"
		}
	}
	return "가입에 실패했습니다. 잠시 후 다시 시도해주세요"
}

// resetErrorMessage maps password reset failures to user-facing copy
func resetErrorMessage(err error) string {
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		return "비밀번호는 8자 이상이어야 합니다"
	}
	return "링크가 만료되었거나 이미 사용되었습니다. 다시 요청해주세요"
}
