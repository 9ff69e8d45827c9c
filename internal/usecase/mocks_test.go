package usecase_test

import (
	"context"

	"codelearn-backend/internal/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, email, hashed string) error {
	return m.Called(ctx, email, hashed).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) CountByRole(ctx context.Context) ([]domain.RoleCount, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]domain.RoleCount), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Course, error) {
	args := m.Called(ctx, ids)
	if c := args.Get(0); c != nil {
		return c.([]domain.Course), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCourseRepo) AddLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error {
	return m.Called(ctx, courseID, lessonID).Error(0)
}

func (m *MockCourseRepo) RemoveLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error {
	return m.Called(ctx, courseID, lessonID).Error(0)
}

func (m *MockCourseRepo) CountByDifficulty(ctx context.Context) ([]domain.DifficultyCount, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]domain.DifficultyCount), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLessonRepo struct {
	mock.Mock
}

func (m *MockLessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLessonRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Lesson, error) {
	args := m.Called(ctx, courseID)
	if l := args.Get(0); l != nil {
		return l.([]domain.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLessonRepo) GetAll(ctx context.Context) ([]domain.Lesson, error) {
	args := m.Called(ctx)
	if l := args.Get(0); l != nil {
		return l.([]domain.Lesson), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLessonRepo) CountByCourseID(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	return m.Called(ctx, quiz).Error(0)
}

func (m *MockQuizRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if q := args.Get(0); q != nil {
		return q.(*domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepo) GetByLessonID(ctx context.Context, lessonID primitive.ObjectID) (*domain.Quiz, error) {
	args := m.Called(ctx, lessonID)
	if q := args.Get(0); q != nil {
		return q.(*domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepo) GetByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) ([]domain.Quiz, error) {
	args := m.Called(ctx, lessonIDs)
	if q := args.Get(0); q != nil {
		return q.([]domain.Quiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockQuizRepo) Update(ctx context.Context, quiz *domain.Quiz) error {
	return m.Called(ctx, quiz).Error(0)
}

func (m *MockQuizRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.Progress, error) {
	args := m.Called(ctx, userID, courseID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Progress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.([]domain.Progress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepo) GetAll(ctx context.Context) ([]domain.Progress, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Progress), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepo) Save(ctx context.Context, progress *domain.Progress) error {
	return m.Called(ctx, progress).Error(0)
}

func (m *MockProgressRepo) QuizPerformance(ctx context.Context) ([]domain.QuizPerformance, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.QuizPerformance), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPolicyRepo struct {
	mock.Mock
}

func (m *MockPolicyRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) (*domain.CertificatePolicy, error) {
	args := m.Called(ctx, courseID)
	if p := args.Get(0); p != nil {
		return p.(*domain.CertificatePolicy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPolicyRepo) GetAll(ctx context.Context) ([]domain.CertificatePolicy, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.CertificatePolicy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPolicyRepo) Upsert(ctx context.Context, policy *domain.CertificatePolicy) (bool, error) {
	args := m.Called(ctx, policy)
	return args.Bool(0), args.Error(1)
}

func (m *MockPolicyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommunityRepo struct {
	mock.Mock
}

func (m *MockCommunityRepo) CreatePost(ctx context.Context, post *domain.CommunityPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockCommunityRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*domain.CommunityPost, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.CommunityPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) LatestPosts(ctx context.Context, limit int) ([]domain.CommunityPost, error) {
	args := m.Called(ctx, limit)
	if p := args.Get(0); p != nil {
		return p.([]domain.CommunityPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommunityRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) error {
	return m.Called(ctx, postID, comment).Error(0)
}

func (m *MockCommunityRepo) SetLikes(ctx context.Context, postID primitive.ObjectID, likes []primitive.ObjectID) error {
	return m.Called(ctx, postID, likes).Error(0)
}

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, feedback *domain.CourseFeedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockFeedbackRepo) GetByCourseAndStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*domain.CourseFeedback, error) {
	args := m.Called(ctx, courseID, studentID)
	if f := args.Get(0); f != nil {
		return f.(*domain.CourseFeedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeedbackRepo) TopReviews(ctx context.Context, courseID primitive.ObjectID, minRating, limit int) ([]domain.CourseFeedback, error) {
	args := m.Called(ctx, courseID, minRating, limit)
	if f := args.Get(0); f != nil {
		return f.([]domain.CourseFeedback), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPlatformFeedbackRepo struct {
	mock.Mock
}

func (m *MockPlatformFeedbackRepo) Create(ctx context.Context, feedback *domain.PlatformFeedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *MockPlatformFeedbackRepo) TopEntries(ctx context.Context, minRating, maxRating, limit int) ([]domain.PlatformFeedback, error) {
	args := m.Called(ctx, minRating, maxRating, limit)
	if f := args.Get(0); f != nil {
		return f.([]domain.PlatformFeedback), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJudge struct {
	mock.Mock
}

func (m *MockJudge) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, challenge *domain.Challenge) error {
	return m.Called(ctx, challenge).Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Challenge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChallengeRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Challenge, error) {
	args := m.Called(ctx, courseID)
	if c := args.Get(0); c != nil {
		return c.([]domain.Challenge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChallengeRepo) Update(ctx context.Context, challenge *domain.Challenge) error {
	return m.Called(ctx, challenge).Error(0)
}

func (m *MockChallengeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
