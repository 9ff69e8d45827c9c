package main

import (
	"context"
	"errors"
	"log"
	"os"

	"codelearn-backend/config"
	httpDelivery "codelearn-backend/internal/delivery/http"
	"codelearn-backend/internal/domain"
	"codelearn-backend/internal/repository"
	"codelearn-backend/internal/usecase"
	"codelearn-backend/pkg/ai"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to MongoDB
	db := config.ConnectDB()
	if err := config.EnsureIndexes(db); err != nil {
		log.Fatal("Failed to create indexes:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	policyRepo := repository.NewCertificatePolicyRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	platformFeedbackRepo := repository.NewPlatformFeedbackRepository(db)
	communityRepo := repository.NewCommunityRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	fileRepo, err := repository.NewGridFSRepository(db)
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}

	judge := ai.NewGeminiClient()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, otpRepo)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, lessonRepo, quizRepo, progressRepo, userRepo)
	progressUsecase := usecase.NewProgressUsecase(quizRepo, lessonRepo, progressRepo, userRepo)
	certUsecase := usecase.NewCertificateUsecase(policyRepo, courseRepo, progressRepo, userRepo)
	communityUsecase := usecase.NewCommunityUsecase(communityRepo, feedbackRepo, platformFeedbackRepo, userRepo, courseRepo)
	challengeUsecase := usecase.NewChallengeUsecase(challengeRepo, judge)
	analyticsUsecase := usecase.NewAnalyticsUsecase(userRepo, courseRepo, progressRepo)

	// Seed demo users
	seedUsers(authUsecase)

	handler := httpDelivery.NewHandler(
		authUsecase,
		courseUsecase,
		progressUsecase,
		certUsecase,
		communityUsecase,
		challengeUsecase,
		analyticsUsecase,
		fileRepo,
	)
	router := httpDelivery.InitRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("API: http://localhost:%s/api/v1", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func seedUsers(authUsecase domain.AuthUsecase) {
	admin := &domain.User{
		Name:     "Admin",
		Email:    "admin@codelearn.com",
		Password: "password123",
		Role:     domain.RoleAdmin,
	}
	if err := authUsecase.Register(context.Background(), admin); err != nil && !errors.Is(err, domain.ErrConflict) {
		log.Printf("Failed to seed admin: %v", err)
	}

	student := &domain.User{
		Name:     "Demo Student",
		Email:    "student@codelearn.com",
		Password: "password123",
		Role:     domain.RoleStudent,
	}
	if err := authUsecase.Register(context.Background(), student); err != nil && !errors.Is(err, domain.ErrConflict) {
		log.Printf("Failed to seed student: %v", err)
	}
}
