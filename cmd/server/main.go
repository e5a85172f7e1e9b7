package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"maeumbaedal/internal/config"
	"maeumbaedal/internal/database"
	"maeumbaedal/internal/handlers"
	"maeumbaedal/internal/repository"
	"maeumbaedal/internal/security"
	"maeumbaedal/internal/service"
	"maeumbaedal/internal/share"

	"golang.org/x/oauth2"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the built-in question catalog
	if err := db.SeedQuestionTemplates(); err != nil {
		log.Printf("Warning: Failed to seed question templates: %v", err)
	}

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	discoveryRepo := repository.NewDiscoveryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	profileService := service.NewProfileService(profileRepo, relationshipRepo)
	questionService := service.NewQuestionService(questionRepo, templateRepo, profileRepo, discoveryRepo, cfg.AppBaseURL)
	maintenanceService := service.NewMaintenanceService(db)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	kakaoClient := share.NewKakaoClient(cfg.KakaoShareToken, cfg.AppBaseURL)

	oauthProviders := map[string]handlers.OAuthProvider{
		"kakao": {
			Name:  "kakao",
			Label: "카카오로 시작하기",
			Config: &oauth2.Config{
				ClientID:     cfg.KakaoClientID,
				ClientSecret: cfg.KakaoClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://kauth.kakao.com/oauth/authorize",
					TokenURL: "https://kauth.kakao.com/oauth/token",
				},
				Scopes: []string{"account_email", "profile_nickname"},
			},
			UserInfoURL: "https://kapi.kakao.com/v2/user/me",
		},
	}

	draftSigner := security.NewDraftSigner(cfg.AppSecret, 24*time.Hour)

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, profileService, cfg.AppSecret)
	authHandler := handlers.NewAuthHandler(authService, emailService, templates, oauthProviders, cfg.AppBaseURL)
	onboardingHandler := handlers.NewOnboardingHandler(profileService, draftSigner, templates)
	dashboardHandler := handlers.NewDashboardHandler(questionService, profileService, middleware, templates)
	questionHandler := handlers.NewQuestionHandler(questionService, profileService, kakaoClient, middleware, templates)
	answerHandler := handlers.NewAnswerHandler(questionService, templates)
	settingsHandler := handlers.NewSettingsHandler(profileService, maintenanceService, authService, settingsRepo, middleware, templates, cfg.Debug)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /{$}", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /auth/forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /auth/reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Public parent-facing routes behind the shared access token
	mux.HandleFunc("GET /answer", answerHandler.ShowAnswerForm)
	mux.HandleFunc("POST /answer", middleware.RateLimit(answerHandler.SubmitAnswer))
	mux.HandleFunc("GET /conversations", answerHandler.ShowConversations)
	mux.HandleFunc("GET /view-answer", answerHandler.ShowViewAnswer)

	// Onboarding wizard
	mux.HandleFunc("GET /onboarding", middleware.RequireAuth(onboardingHandler.ShowStep))
	mux.HandleFunc("POST /onboarding", middleware.RequireAuth(onboardingHandler.SubmitStep))
	mux.HandleFunc("POST /onboarding/back", middleware.RequireAuth(onboardingHandler.Back))

	// Child routes
	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(middleware.RequireProfile(dashboardHandler.Dashboard)))
	mux.HandleFunc("GET /questions/new", middleware.RequireAuth(middleware.RequireProfile(questionHandler.ShowSelector)))
	mux.HandleFunc("POST /questions", middleware.RequireAuth(middleware.RequireProfile(middleware.CSRFProtect(questionHandler.SendQuestion))))
	mux.HandleFunc("GET /questions/{id}", middleware.RequireAuth(middleware.RequireProfile(questionHandler.ShowQuestion)))
	mux.HandleFunc("POST /questions/{id}/followup", middleware.RequireAuth(middleware.RequireProfile(middleware.CSRFProtect(questionHandler.SubmitFollowup))))
	mux.HandleFunc("POST /questions/{id}/discovery", middleware.RequireAuth(middleware.RequireProfile(middleware.CSRFProtect(questionHandler.CreateDiscovery))))
	mux.HandleFunc("GET /conversations/all", middleware.RequireAuth(middleware.RequireProfile(questionHandler.ShowAllConversations)))

	// Settings
	mux.HandleFunc("GET /settings", middleware.RequireAuth(middleware.RequireProfile(settingsHandler.ShowSettings)))
	mux.HandleFunc("POST /settings", middleware.RequireAuth(middleware.RequireProfile(middleware.CSRFProtect(settingsHandler.SaveSettings))))
	mux.HandleFunc("POST /settings/dev/toggle-daily-send", middleware.RequireAuth(middleware.CSRFProtect(settingsHandler.ToggleDailySend)))
	mux.HandleFunc("POST /settings/dev/clear-my-data", middleware.RequireAuth(middleware.CSRFProtect(settingsHandler.ClearMyData)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Start the daily question delivery loop
	deliveryCtx, stopDelivery := context.WithCancel(context.Background())
	defer stopDelivery()
	if cfg.DailySendEnabled {
		deliveryService := service.NewDeliveryService(profileRepo, questionRepo, settingsRepo, userRepo, questionService, emailService)
		go deliveryService.Run(deliveryCtx)
	} else {
		log.Println("Daily question delivery disabled by configuration")
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	stopDelivery()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	baseTemplate := filepath.Join(templatesPath, "base.tmpl")

	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "onboarding/*.tmpl"),
		filepath.Join(templatesPath, "dashboard/*.tmpl"),
		filepath.Join(templatesPath, "answer/*.tmpl"),
	}

	var files []string
	files = append(files, baseTemplate)

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	// Define template functions
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2006년 1월 2일")
		},
		"formatDateTime": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006년 1월 2일 15:04")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"until": func(count int) []int {
			result := make([]int, count)
			for i := 0; i < count; i++ {
				result[i] = i
			}
			return result
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions and stale
// password reset tokens
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}

		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		}
	}
}
