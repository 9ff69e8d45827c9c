package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ========== CERTIFICATE HANDLERS ==========

func (h *Handler) UpsertCertificatePolicy(c *gin.Context) {
	var req struct {
		CourseID            string `json:"course_id" binding:"required"`
		MinLecturesRequired int    `json:"min_lectures_required" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course_id"})
		return
	}

	created, err := h.CertificateUsecase.UpsertPolicy(c.Request.Context(), courseID, req.MinLecturesRequired)
	if err != nil {
		respondError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Certificate policy created"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate policy updated"})
}

func (h *Handler) DeleteCertificatePolicy(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.CertificateUsecase.DeletePolicy(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificate policy deleted"})
}

func (h *Handler) GetCertificatePolicyOverview(c *gin.Context) {
	overview, err := h.CertificateUsecase.PolicyOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *Handler) GetEligibleCertificates(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	certificates, err := h.CertificateUsecase.EligibleCertificates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificates)
}

func (h *Handler) DownloadCertificate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}

	certificate, err := h.CertificateUsecase.DownloadCertificate(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, certificate)
}

// ========== ANALYTICS HANDLERS ==========

func (h *Handler) GetUserRoleDistribution(c *gin.Context) {
	counts, err := h.AnalyticsUsecase.UserRoleDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *Handler) GetCourseDifficultyDistribution(c *gin.Context) {
	counts, err := h.AnalyticsUsecase.CourseDifficultyDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *Handler) GetQuizPerformance(c *gin.Context) {
	perf, err := h.AnalyticsUsecase.QuizPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

func (h *Handler) GetStudentProgressOverview(c *gin.Context) {
	overview, err := h.AnalyticsUsecase.StudentProgress(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
