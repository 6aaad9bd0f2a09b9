package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"algoprep/internal/api"
	"algoprep/internal/app/service"
	"algoprep/internal/app/worker"
	"algoprep/internal/common/security"
	"algoprep/internal/domain/repository"
	"algoprep/internal/platform/config"
	"algoprep/internal/platform/database"
	"algoprep/internal/platform/queue"
	"algoprep/internal/search"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	questionRepo := repository.NewPgQuestionRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize Services
	index := search.NewIndex()
	authService := service.NewAuthService(userRepo)
	questionService := service.NewQuestionService(questionRepo, index)
	submissionService := service.NewSubmissionService(submissionRepo)
	recommendationService := service.NewRecommendationService(questionRepo, submissionRepo)
	analyticsService := service.NewAnalyticsService(questionRepo, submissionRepo, userRepo)
	executionService := service.NewExecutionService(queue.RDB)

	// 7. Populate the prefix index now that the store is ready
	if err := questionService.RebuildIndex(context.Background()); err != nil {
		log.Fatalf("Failed to build initial prefix index: %v", err)
	}

	// 8. Initialize Execution Worker (as a goroutine)
	executionWorker := worker.NewExecutionWorker(queue.RDB, executionService)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go executionWorker.Start(workerCtx)
	fmt.Println("Execution worker started.")

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, questionService, submissionService, recommendationService, analyticsService, executionService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")
	workerCancel() // Signal worker to stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
