package http

import (
	"io"
	"net/http"

	"codelearn-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ========== FILE HANDLERS ==========

// UploadProfilePic stores the image in GridFS and records its URL on the
// user's profile.
func (h *Handler) UploadProfilePic(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	info, err := h.FileRepo.Upload(c.Request.Context(), file, fileHeader, repository.FileMetadata{
		UploadedBy: userID,
		Purpose:    "profile_pic",
	})
	if err != nil {
		respondError(c, err)
		return
	}

	picURL := "/api/v1/files/" + info.ID
	if err := h.AuthUsecase.UpdateProfilePic(c.Request.Context(), userID, picURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": picURL, "file": info})
}

// UploadThumbnail stores a course thumbnail image in GridFS and records its
// URL on the course.
func (h *Handler) UploadThumbnail(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseObjectID(c, "courseId")
	if !ok {
		return
	}
	if _, err := h.CourseUsecase.GetCourseByID(c.Request.Context(), courseID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	info, err := h.FileRepo.Upload(c.Request.Context(), file, fileHeader, repository.FileMetadata{
		UploadedBy: userID,
		Purpose:    "thumbnail",
	})
	if err != nil {
		respondError(c, err)
		return
	}

	thumbURL := "/api/v1/files/" + info.ID
	if err := h.CourseUsecase.SetCourseThumbnail(c.Request.Context(), courseID, thumbURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": thumbURL, "file": info})
}

// ServeFile streams a stored file back to the client.
func (h *Handler) ServeFile(c *gin.Context) {
	stream, info, err := h.FileRepo.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Disposition", `inline; filename="`+info.Metadata.OriginalName+`"`)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, stream)
}
