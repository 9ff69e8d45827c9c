package http

import (
	"os"
	"time"

	"codelearn-backend/internal/domain"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRouter(handler *Handler) *gin.Engine {
	r := gin.Default()

	frontendOrigin := os.Getenv("FRONTEND_ORIGIN")
	if frontendOrigin == "" {
		frontendOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	student := string(domain.RoleStudent)
	admin := string(domain.RoleAdmin)

	// Public routes
	api := r.Group("/api/v1")
	{
		api.POST("/otp/send", handler.SendOTP)
		api.POST("/otp/verify", handler.VerifyOTP)
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.POST("/logout", handler.Logout)
		api.POST("/reset-password", handler.ResetPassword)
		api.GET("/files/:id", handler.ServeFile)
		api.POST("/feedback", handler.SubmitPlatformFeedback)
		api.GET("/feedback", handler.GetPlatformTestimonials)
	}

	// Any authenticated user
	protected := api.Group("/")
	protected.Use(AuthMiddleware())
	{
		protected.GET("/profile", handler.GetProfile)
		protected.PUT("/profile", handler.UpdateProfile)
		protected.POST("/profile/picture", handler.UploadProfilePic)

		protected.GET("/courses", handler.GetCourses)
		protected.GET("/courses/:courseId", handler.GetCourse)
		protected.GET("/courses/:courseId/reviews", handler.GetCourseReviews)

		protected.GET("/community/posts", handler.GetPosts)
		protected.POST("/community/posts", handler.CreatePost)
		protected.POST("/community/posts/:postId/comments", handler.AddComment)
		protected.POST("/community/posts/:postId/like", handler.ToggleLike)

		protected.POST("/assist", handler.Assist)
	}

	// Student routes
	studentGroup := api.Group("/student")
	studentGroup.Use(AuthMiddleware(student, admin))
	{
		studentGroup.POST("/courses/:courseId/enroll", handler.Enroll)
		studentGroup.GET("/courses", handler.GetEnrolledCourses)
		studentGroup.GET("/courses/:courseId/lessons", handler.GetGatedLessons)
		studentGroup.POST("/quizzes/:quizId/submit", handler.SubmitQuiz)

		studentGroup.POST("/courses/:courseId/feedback", handler.SubmitFeedback)

		studentGroup.GET("/courses/:courseId/challenges", handler.GetChallenges)
		studentGroup.POST("/challenges/:id/submit", handler.SubmitChallenge)

		studentGroup.GET("/certificates", handler.GetEligibleCertificates)
		studentGroup.GET("/certificates/:courseId/download", handler.DownloadCertificate)
	}

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(AuthMiddleware(admin))
	{
		adminGroup.POST("/courses", handler.CreateCourse)
		adminGroup.PUT("/courses/:courseId", handler.UpdateCourse)
		adminGroup.DELETE("/courses/:courseId", handler.DeleteCourse)
		adminGroup.POST("/courses/:courseId/thumbnail", handler.UploadThumbnail)

		adminGroup.POST("/courses/:courseId/lessons", handler.AddLesson)
		adminGroup.GET("/courses/:courseId/lessons", handler.GetLessons)
		adminGroup.GET("/courses/:courseId/lessons/without-quizzes", handler.GetLessonsWithoutQuizzes)
		adminGroup.GET("/lessons/:id", handler.GetLesson)
		adminGroup.PUT("/lessons/:id", handler.UpdateLesson)
		adminGroup.DELETE("/lessons/:id", handler.DeleteLesson)

		adminGroup.POST("/quizzes", handler.AddQuiz)
		adminGroup.GET("/quizzes/:id", handler.GetQuiz)
		adminGroup.GET("/courses/:courseId/quizzes", handler.GetQuizzesByCourse)
		adminGroup.PUT("/quizzes/:id", handler.UpdateQuiz)
		adminGroup.DELETE("/quizzes/:id", handler.DeleteQuiz)

		adminGroup.POST("/certificates", handler.UpsertCertificatePolicy)
		adminGroup.GET("/certificates", handler.GetCertificatePolicyOverview)
		adminGroup.DELETE("/certificates/:id", handler.DeleteCertificatePolicy)

		adminGroup.POST("/courses/:courseId/challenges", handler.AddChallenge)
		adminGroup.PUT("/challenges/:id", handler.UpdateChallenge)
		adminGroup.DELETE("/challenges/:id", handler.DeleteChallenge)

		adminGroup.GET("/analytics/roles", handler.GetUserRoleDistribution)
		adminGroup.GET("/analytics/difficulty", handler.GetCourseDifficultyDistribution)
		adminGroup.GET("/analytics/quizzes", handler.GetQuizPerformance)
		adminGroup.GET("/analytics/progress", handler.GetStudentProgressOverview)
	}

	return r
}
