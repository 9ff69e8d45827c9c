package http

import (
	"net/http"

	"codelearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ========== COURSE HANDLERS ==========

func (h *Handler) CreateCourse(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Difficulty  string `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
		Category    string `json:"category"`
		Thumbnail   string `json:"thumbnail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course := domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
	}
	if err := h.CourseUsecase.CreateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *Handler) GetCourses(c *gin.Context) {
	courses, err := h.CourseUsecase.GetAllCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	course, err := h.CourseUsecase.GetCourseByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Difficulty  string `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
		Category    string `json:"category"`
		Thumbnail   string `json:"thumbnail"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course := domain.Course{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Category:    req.Category,
		Thumbnail:   req.Thumbnail,
	}
	if err := h.CourseUsecase.UpdateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course updated successfully"})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	if err := h.CourseUsecase.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

// ========== LESSON HANDLERS ==========

func (h *Handler) AddLesson(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req struct {
		Title        string               `json:"title" binding:"required"`
		Content      string               `json:"content" binding:"required"`
		VideoURL     string               `json:"video_url"`
		Order        int                  `json:"order" binding:"omitempty,min=1"`
		CodeExamples []domain.CodeExample `json:"code_examples"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lesson := domain.Lesson{
		CourseID:     courseID,
		Title:        req.Title,
		Content:      req.Content,
		VideoURL:     req.VideoURL,
		Order:        req.Order,
		CodeExamples: req.CodeExamples,
	}
	if err := h.CourseUsecase.AddLesson(c.Request.Context(), &lesson); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *Handler) GetLessons(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	lessons, err := h.CourseUsecase.GetLessons(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *Handler) GetLesson(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	lesson, err := h.CourseUsecase.GetLessonByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	existing, err := h.CourseUsecase.GetLessonByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		VideoURL string `json:"video_url"`
		Order    int    `json:"order" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	existing.Title = req.Title
	existing.Content = req.Content
	existing.VideoURL = req.VideoURL
	if req.Order > 0 {
		existing.Order = req.Order
	}
	if err := h.CourseUsecase.UpdateLesson(c.Request.Context(), existing); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated successfully"})
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.CourseUsecase.DeleteLesson(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted successfully"})
}

func (h *Handler) GetLessonsWithoutQuizzes(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	lessons, err := h.CourseUsecase.LessonsWithoutQuizzes(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// ========== QUIZ HANDLERS ==========

func (h *Handler) AddQuiz(c *gin.Context) {
	var req struct {
		LessonID  string            `json:"lesson_id" binding:"required"`
		Questions []domain.Question `json:"questions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lessonID, err := primitive.ObjectIDFromHex(req.LessonID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lesson_id"})
		return
	}

	quiz := domain.Quiz{LessonID: lessonID, Questions: req.Questions}
	if err := h.CourseUsecase.AddQuiz(c.Request.Context(), &quiz); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *Handler) GetQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	quiz, err := h.CourseUsecase.GetQuizByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *Handler) GetQuizzesByCourse(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	quizzes, err := h.CourseUsecase.GetQuizzesByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *Handler) UpdateQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Questions []domain.Question `json:"questions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	quiz := domain.Quiz{ID: id, Questions: req.Questions}
	if err := h.CourseUsecase.UpdateQuiz(c.Request.Context(), &quiz); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated successfully"})
}

func (h *Handler) DeleteQuiz(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.CourseUsecase.DeleteQuiz(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ========== ENROLLMENT & PROGRESSION ==========

func (h *Handler) Enroll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	if err := h.CourseUsecase.Enroll(c.Request.Context(), userID, courseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolled successfully"})
}

func (h *Handler) GetEnrolledCourses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courses, err := h.CourseUsecase.EnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetGatedLessons returns the course's lessons with per-student unlock flags.
func (h *Handler) GetGatedLessons(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	lessons, err := h.CourseUsecase.LessonsWithGating(c.Request.Context(), courseID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	quizID, ok := parseObjectID(c, "quizId")
	if !ok {
		return
	}

	var req struct {
		SelectedAnswers map[int]string `json:"selected_answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	result, err := h.ProgressUsecase.SubmitQuiz(c.Request.Context(), userID, quizID, req.SelectedAnswers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
