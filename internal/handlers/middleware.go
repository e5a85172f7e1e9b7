package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"maeumbaedal/internal/models"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	UserContextKey    ContextKey = "user"
	ProfileContextKey ContextKey = "profile"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	csrf           *security.CSRFGenerator
	loginLimiter   *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, profileService *service.ProfileService, appSecret string) *Middleware {
	return &Middleware{
		authService:    authService,
		profileService: profileService,
		csrf:           security.NewCSRFGenerator(appSecret),
		loginLimiter:   security.NewRateLimiter(10, 1*time.Minute),
	}
}

// RequireAuth is middleware that requires a valid session
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_id")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			// Clear invalid cookie
			http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireProfile is middleware that requires completed onboarding. Users
// without a profile are sent to the wizard. Must run inside RequireAuth.
func (m *Middleware) RequireProfile(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		profile, err := m.profileService.GetProfile(user.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to load profile", err)
			return
		}
		if profile == nil {
			http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), ProfileContextKey, profile)
		next(w, r.WithContext(ctx))
	}
}

// CSRFProtect validates the csrf_token form field against the session.
// Must run inside RequireAuth so the session cookie is known valid.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session_id")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid form data", "", err)
			return
		}

		token := r.FormValue("csrf_token")
		if !m.csrf.ValidateToken(cookie.Value, token) {
			respondWithError(w, http.StatusForbidden, "Invalid request token", "CSRF validation failed", nil)
			return
		}

		next(w, r)
	}
}

// CSRFToken returns the CSRF token for the current session, for embedding
// in forms.
func (m *Middleware) CSRFToken(r *http.Request) string {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return ""
	}
	token, err := m.csrf.GenerateToken(cookie.Value)
	if err != nil {
		return ""
	}
	return token
}

// RateLimit throttles requests per client IP. Applied to the login and
// register endpoints and to the public answer form.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.loginLimiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later", "", nil)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetProfileFromContext retrieves the profile from the request context
func GetProfileFromContext(ctx context.Context) *models.Profile {
	profile, ok := ctx.Value(ProfileContextKey).(*models.Profile)
	if !ok {
		return nil
	}
	return profile
}
