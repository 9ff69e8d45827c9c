package usecase_test

import (
	"context"
	"testing"

	"codelearn-backend/internal/domain"
	"codelearn-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type communityFixture struct {
	communityRepo *MockCommunityRepo
	feedbackRepo  *MockFeedbackRepo
	platformRepo  *MockPlatformFeedbackRepo
	userRepo      *MockUserRepo
	courseRepo    *MockCourseRepo
	uc            domain.CommunityUsecase
}

func newCommunityFixture() *communityFixture {
	f := &communityFixture{
		communityRepo: new(MockCommunityRepo),
		feedbackRepo:  new(MockFeedbackRepo),
		platformRepo:  new(MockPlatformFeedbackRepo),
		userRepo:      new(MockUserRepo),
		courseRepo:    new(MockCourseRepo),
	}
	f.uc = usecase.NewCommunityUsecase(f.communityRepo, f.feedbackRepo, f.platformRepo, f.userRepo, f.courseRepo)
	return f
}

func TestSubmitPlatformFeedback(t *testing.T) {
	t.Run("stores a complete entry", func(t *testing.T) {
		f := newCommunityFixture()
		f.platformRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PlatformFeedback")).Return(nil)

		err := f.uc.SubmitPlatformFeedback(context.Background(), "Ada", "ada@example.com", "Great platform", 5)

		assert.NoError(t, err)
		f.platformRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(fb *domain.PlatformFeedback) bool {
			return fb.Name == "Ada" && fb.Email == "ada@example.com" &&
				fb.Message == "Great platform" && fb.Rating == 5
		}))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		f := newCommunityFixture()

		err := f.uc.SubmitPlatformFeedback(context.Background(), "Ada", "", "Great platform", 5)

		assert.ErrorIs(t, err, domain.ErrValidation)
		f.platformRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a rating outside 1..5", func(t *testing.T) {
		f := newCommunityFixture()

		err := f.uc.SubmitPlatformFeedback(context.Background(), "Ada", "ada@example.com", "Great platform", 6)

		assert.ErrorIs(t, err, domain.ErrValidation)
		f.platformRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPlatformTestimonials(t *testing.T) {
	f := newCommunityFixture()
	entries := []domain.PlatformFeedback{
		{ID: primitive.NewObjectID(), Name: "Ada", Rating: 5},
		{ID: primitive.NewObjectID(), Name: "Grace", Rating: 3},
	}
	f.platformRepo.On("TopEntries", mock.Anything, 3, 5, 5).Return(entries, nil)

	got, err := f.uc.PlatformTestimonials(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestSubmitCourseFeedback(t *testing.T) {
	t.Run("second review for the same course conflicts", func(t *testing.T) {
		f := newCommunityFixture()
		courseID := primitive.NewObjectID()
		studentID := primitive.NewObjectID()
		f.courseRepo.On("GetByID", mock.Anything, courseID).Return(&domain.Course{ID: courseID}, nil)
		f.feedbackRepo.On("GetByCourseAndStudent", mock.Anything, courseID, studentID).
			Return(&domain.CourseFeedback{CourseID: courseID, StudentID: studentID}, nil)

		err := f.uc.SubmitFeedback(context.Background(), studentID, courseID, 4, "Nice")

		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
