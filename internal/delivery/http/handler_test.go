package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	delivery "codelearn-backend/internal/delivery/http"
	"codelearn-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockProgressUsecase struct {
	mock.Mock
}

func (m *MockProgressUsecase) SubmitQuiz(ctx context.Context, userID, quizID primitive.ObjectID, selectedAnswers map[int]string) (*domain.QuizSubmission, error) {
	args := m.Called(ctx, userID, quizID, selectedAnswers)
	if r := args.Get(0); r != nil {
		return r.(*domain.QuizSubmission), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCertificateUsecase struct {
	mock.Mock
}

func (m *MockCertificateUsecase) UpsertPolicy(ctx context.Context, courseID primitive.ObjectID, minLectures int) (bool, error) {
	args := m.Called(ctx, courseID, minLectures)
	return args.Bool(0), args.Error(1)
}

func (m *MockCertificateUsecase) DeletePolicy(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCertificateUsecase) PolicyOverview(ctx context.Context) (*domain.CoursePolicyOverview, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.(*domain.CoursePolicyOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificateUsecase) EligibleCertificates(ctx context.Context, userID primitive.ObjectID) ([]domain.EligibleCertificate, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.([]domain.EligibleCertificate), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCertificateUsecase) DownloadCertificate(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.CertificateData, error) {
	args := m.Called(ctx, userID, courseID)
	if c := args.Get(0); c != nil {
		return c.(*domain.CertificateData), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(handler *delivery.Handler, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID.Hex())
		c.Set("role", string(domain.RoleStudent))
		c.Next()
	})
	r.POST("/student/quizzes/:quizId/submit", handler.SubmitQuiz)
	r.GET("/student/certificates/:courseId/download", handler.DownloadCertificate)
	return r
}

func TestSubmitQuizHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	quizID := primitive.NewObjectID()

	t.Run("returns the computed score", func(t *testing.T) {
		progressUC := new(MockProgressUsecase)
		handler := &delivery.Handler{ProgressUsecase: progressUC}
		router := setupRouter(handler, userID)

		submission := &domain.QuizSubmission{
			Score: 50,
			Progress: &domain.Progress{
				UserID:               userID,
				CompletionPercentage: 33.33,
			},
		}
		progressUC.On("SubmitQuiz", mock.Anything, userID, quizID, map[int]string{0: "x", 1: "z"}).
			Return(submission, nil)

		body, _ := json.Marshal(gin.H{"selected_answers": map[string]string{"0": "x", "1": "z"}})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/student/quizzes/"+quizID.Hex()+"/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response domain.QuizSubmission
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, float64(50), response.Score)
		assert.Equal(t, 33.33, response.Progress.CompletionPercentage)
	})

	t.Run("rejects an invalid quiz id", func(t *testing.T) {
		progressUC := new(MockProgressUsecase)
		handler := &delivery.Handler{ProgressUsecase: progressUC}
		router := setupRouter(handler, userID)

		body, _ := json.Marshal(gin.H{"selected_answers": map[string]string{"0": "x"}})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/student/quizzes/not-an-id/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		progressUC.AssertNotCalled(t, "SubmitQuiz", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing body", func(t *testing.T) {
		progressUC := new(MockProgressUsecase)
		handler := &delivery.Handler{ProgressUsecase: progressUC}
		router := setupRouter(handler, userID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/student/quizzes/"+quizID.Hex()+"/submit", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failures answer with a generic message", func(t *testing.T) {
		progressUC := new(MockProgressUsecase)
		handler := &delivery.Handler{ProgressUsecase: progressUC}
		router := setupRouter(handler, userID)

		progressUC.On("SubmitQuiz", mock.Anything, userID, quizID, map[int]string{0: "x"}).
			Return(nil, errors.New("connection refused"))

		body, _ := json.Marshal(gin.H{"selected_answers": map[string]string{"0": "x"}})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/student/quizzes/"+quizID.Hex()+"/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestDownloadCertificateHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	t.Run("forbidden below the lecture threshold", func(t *testing.T) {
		certUC := new(MockCertificateUsecase)
		handler := &delivery.Handler{CertificateUsecase: certUC}
		router := setupRouter(handler, userID)

		certUC.On("DownloadCertificate", mock.Anything, userID, courseID).
			Return(nil, domain.ErrForbidden)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/student/certificates/"+courseID.Hex()+"/download", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("returns certificate data when eligible", func(t *testing.T) {
		certUC := new(MockCertificateUsecase)
		handler := &delivery.Handler{CertificateUsecase: certUC}
		router := setupRouter(handler, userID)

		certUC.On("DownloadCertificate", mock.Anything, userID, courseID).
			Return(&domain.CertificateData{
				Serial:      "abc-123",
				StudentName: "Ada",
				CourseTitle: "Go Basics",
				Percentage:  100,
			}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/student/certificates/"+courseID.Hex()+"/download", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var cert domain.CertificateData
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &cert))
		assert.Equal(t, "Ada", cert.StudentName)
		assert.NotEmpty(t, cert.Serial)
	})
}
