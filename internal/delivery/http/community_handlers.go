package http

import (
	"net/http"

	"codelearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== COMMUNITY HANDLERS ==========

func (h *Handler) CreatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	post, err := h.CommunityUsecase.CreatePost(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *Handler) GetPosts(c *gin.Context) {
	posts, err := h.CommunityUsecase.GetPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) AddComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	if err := h.CommunityUsecase.AddComment(c.Request.Context(), userID, postID, req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added"})
}

func (h *Handler) ToggleLike(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	postID, ok := parseObjectID(c, "postId")
	if !ok {
		return
	}

	likes, err := h.CommunityUsecase.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// ========== FEEDBACK HANDLERS ==========

func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	if err := h.CommunityUsecase.SubmitFeedback(c.Request.Context(), userID, courseID, req.Rating, req.Comment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted"})
}

func (h *Handler) GetCourseReviews(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	reviews, err := h.CommunityUsecase.CourseReviews(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SubmitPlatformFeedback records a testimonial about the platform. No account
// is needed, so the sender identifies with a name and an email.
func (h *Handler) SubmitPlatformFeedback(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required"`
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	if err := h.CommunityUsecase.SubmitPlatformFeedback(c.Request.Context(), req.Name, req.Email, req.Message, req.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted successfully!"})
}

func (h *Handler) GetPlatformTestimonials(c *gin.Context) {
	entries, err := h.CommunityUsecase.PlatformTestimonials(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ========== CHALLENGE HANDLERS ==========

func (h *Handler) AddChallenge(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	var req struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description" binding:"required"`
		StarterCode string            `json:"starter_code"`
		TestCases   []domain.TestCase `json:"test_cases" binding:"required,min=1,dive"`
		Difficulty  string            `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	challenge := domain.Challenge{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		StarterCode: req.StarterCode,
		TestCases:   req.TestCases,
		Difficulty:  req.Difficulty,
	}
	if err := h.ChallengeUsecase.AddChallenge(c.Request.Context(), &challenge); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

func (h *Handler) GetChallenges(c *gin.Context) {
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	challenges, err := h.ChallengeUsecase.GetChallenges(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func (h *Handler) UpdateChallenge(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description" binding:"required"`
		StarterCode string            `json:"starter_code"`
		TestCases   []domain.TestCase `json:"test_cases" binding:"required,min=1,dive"`
		Difficulty  string            `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	challenge := domain.Challenge{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		StarterCode: req.StarterCode,
		TestCases:   req.TestCases,
		Difficulty:  req.Difficulty,
	}
	if err := h.ChallengeUsecase.UpdateChallenge(c.Request.Context(), &challenge); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge updated successfully"})
}

func (h *Handler) DeleteChallenge(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.ChallengeUsecase.DeleteChallenge(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted successfully"})
}

func (h *Handler) SubmitChallenge(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	challengeID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Code     string `json:"code" binding:"required"`
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	verdict, err := h.ChallengeUsecase.SubmitChallenge(c.Request.Context(), userID, challengeID, req.Code, req.Language)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

func (h *Handler) Assist(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	answer, err := h.ChallengeUsecase.Assist(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
