package api

import (
	"net/http"
	"time"

	"algoprep/internal/api/handler"
	"algoprep/internal/app/service"
	"algoprep/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	submissionService *service.SubmissionService,
	recommendationService *service.RecommendationService,
	analyticsService *service.AnalyticsService,
	executionService *service.ExecutionService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present, puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Question routes (reads public, mutations authenticated)
		questionHandler := handler.NewQuestionHandler(questionService)
		v1.Route("/questions", questionHandler.RegisterRoutes)

		// Submission routes
		submissionHandler := handler.NewSubmissionHandler(submissionService)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		// Recommendation routes (public)
		recommendationHandler := handler.NewRecommendationHandler(recommendationService)
		v1.Route("/recommendations", recommendationHandler.RegisterRoutes)

		// Analytics routes (public)
		analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
		v1.Route("/analytics", analyticsHandler.RegisterRoutes)

		// Code execution routes (public playground)
		executionHandler := handler.NewExecutionHandler(executionService)
		v1.Route("/execute", executionHandler.RegisterRoutes)
	})

	return r
}
