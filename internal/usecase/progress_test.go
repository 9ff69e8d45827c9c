package usecase_test

import (
	"context"
	"sync"
	"testing"

	"codelearn-backend/internal/domain"
	"codelearn-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type progressFixture struct {
	quizRepo     *MockQuizRepo
	lessonRepo   *MockLessonRepo
	progressRepo *MockProgressRepo
	userRepo     *MockUserRepo
	uc           domain.ProgressUsecase

	userID   primitive.ObjectID
	courseID primitive.ObjectID
	lesson   *domain.Lesson
	quiz     *domain.Quiz
}

func newProgressFixture() *progressFixture {
	f := &progressFixture{
		quizRepo:     new(MockQuizRepo),
		lessonRepo:   new(MockLessonRepo),
		progressRepo: new(MockProgressRepo),
		userRepo:     new(MockUserRepo),
		userID:       primitive.NewObjectID(),
		courseID:     primitive.NewObjectID(),
	}
	f.uc = usecase.NewProgressUsecase(f.quizRepo, f.lessonRepo, f.progressRepo, f.userRepo)

	f.lesson = &domain.Lesson{
		ID:       primitive.NewObjectID(),
		CourseID: f.courseID,
		Title:    "Variables",
		Order:    1,
	}
	f.quiz = &domain.Quiz{
		ID:       primitive.NewObjectID(),
		LessonID: f.lesson.ID,
		Questions: []domain.Question{
			{QuestionText: "Q1", Options: []string{"x", "y"}, CorrectAnswer: "x"},
			{QuestionText: "Q2", Options: []string{"y", "z"}, CorrectAnswer: "y"},
		},
	}

	f.quizRepo.On("GetByID", mock.Anything, f.quiz.ID).Return(f.quiz, nil)
	f.lessonRepo.On("GetByID", mock.Anything, f.lesson.ID).Return(f.lesson, nil)
	f.userRepo.On("GetByID", mock.Anything, f.userID).Return(&domain.User{ID: f.userID, Name: "Student"}, nil)
	f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	return f
}

func TestSubmitQuizScoring(t *testing.T) {
	t.Run("all answers exactly correct scores 100", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "y"})

		assert.NoError(t, err)
		assert.Equal(t, float64(100), result.Score)
		assert.Contains(t, result.Progress.CompletedLessons, f.lesson.ID)
	})

	t.Run("near miss answers earn nothing", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		// Case and whitespace differences are wrong answers.
		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "X", 1: "y "})

		assert.NoError(t, err)
		assert.Equal(t, float64(0), result.Score)
	})

	t.Run("half correct scores 50", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "z"})

		assert.NoError(t, err)
		assert.Equal(t, float64(50), result.Score)
	})

	t.Run("missing answers count as wrong", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x"})

		assert.NoError(t, err)
		assert.Equal(t, float64(50), result.Score)
	})
}

func TestSubmitQuizProgress(t *testing.T) {
	t.Run("percentage rounds to two decimals", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(3), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "y"})

		assert.NoError(t, err)
		assert.Equal(t, 33.33, result.Progress.CompletionPercentage)
		assert.False(t, result.Progress.IsCourseCompleted)
	})

	t.Run("completing the only lesson completes the course", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(1), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "y"})

		assert.NoError(t, err)
		assert.Equal(t, float64(100), result.Progress.CompletionPercentage)
		assert.True(t, result.Progress.IsCourseCompleted)
	})

	t.Run("resubmission replaces the score without duplicating entries", func(t *testing.T) {
		f := newProgressFixture()
		existing := &domain.Progress{
			ID:               primitive.NewObjectID(),
			UserID:           f.userID,
			CourseID:         f.courseID,
			CompletedLessons: []primitive.ObjectID{f.lesson.ID},
			QuizzesCompleted: []domain.QuizResult{{QuizID: f.quiz.ID, Score: 50}},
		}
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(existing, nil)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "y"})

		assert.NoError(t, err)
		assert.Equal(t, float64(100), result.Score)
		assert.Len(t, result.Progress.CompletedLessons, 1)
		assert.Len(t, result.Progress.QuizzesCompleted, 1)
		assert.Equal(t, float64(100), result.Progress.QuizzesCompleted[0].Score)
	})

	t.Run("lower resubmission still replaces the score", func(t *testing.T) {
		f := newProgressFixture()
		existing := &domain.Progress{
			ID:               primitive.NewObjectID(),
			UserID:           f.userID,
			CourseID:         f.courseID,
			CompletedLessons: []primitive.ObjectID{f.lesson.ID},
			QuizzesCompleted: []domain.QuizResult{{QuizID: f.quiz.ID, Score: 100}},
		}
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(existing, nil)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		result, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "z"})

		assert.NoError(t, err)
		assert.Equal(t, float64(50), result.Progress.QuizzesCompleted[0].Score)
	})

	t.Run("mirrors progress onto the user document", func(t *testing.T) {
		f := newProgressFixture()
		f.progressRepo.On("GetByUserAndCourse", mock.Anything, f.userID, f.courseID).Return(nil, domain.ErrNotFound)
		f.lessonRepo.On("CountByCourseID", mock.Anything, f.courseID).Return(int64(2), nil)
		f.progressRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Progress")).Return(nil)

		_, err := f.uc.SubmitQuiz(context.Background(), f.userID, f.quiz.ID, map[int]string{0: "x", 1: "y"})

		assert.NoError(t, err)
		f.userRepo.AssertCalled(t, "Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return len(u.Progress) == 1 &&
				u.Progress[0].CourseID == f.courseID &&
				u.Progress[0].CompletionPercentage == 50
		}))
	})
}

// ========== CONCURRENCY ==========

// In-memory stores used to verify that concurrent submissions in the same
// course do not lose lesson completions.

type fakeProgressStore struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]*domain.Progress
}

func (s *fakeProgressStore) GetByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.records[courseID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	clone.CompletedLessons = append([]primitive.ObjectID(nil), p.CompletedLessons...)
	clone.QuizzesCompleted = append([]domain.QuizResult(nil), p.QuizzesCompleted...)
	return &clone, nil
}

func (s *fakeProgressStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	return nil, nil
}

func (s *fakeProgressStore) GetAll(ctx context.Context) ([]domain.Progress, error) {
	return nil, nil
}

func (s *fakeProgressStore) Save(ctx context.Context, progress *domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *progress
	s.records[progress.CourseID] = &clone
	return nil
}

func (s *fakeProgressStore) QuizPerformance(ctx context.Context) ([]domain.QuizPerformance, error) {
	return nil, nil
}

type fakeUserStore struct {
	mu   sync.Mutex
	user *domain.User
}

func (s *fakeUserStore) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (s *fakeUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *s.user
	clone.Progress = append([]domain.UserProgress(nil), s.user.Progress...)
	return &clone, nil
}
func (s *fakeUserStore) GetAll(ctx context.Context) ([]domain.User, error) { return nil, nil }
func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.user = &clone
	return nil
}
func (s *fakeUserStore) UpdatePassword(ctx context.Context, email, hashed string) error { return nil }
func (s *fakeUserStore) Delete(ctx context.Context, id primitive.ObjectID) error        { return nil }
func (s *fakeUserStore) CountByRole(ctx context.Context) ([]domain.RoleCount, error) {
	return nil, nil
}

func TestSubmitQuizConcurrent(t *testing.T) {
	courseID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	lessonA := &domain.Lesson{ID: primitive.NewObjectID(), CourseID: courseID, Order: 1}
	lessonB := &domain.Lesson{ID: primitive.NewObjectID(), CourseID: courseID, Order: 2}
	quizA := &domain.Quiz{ID: primitive.NewObjectID(), LessonID: lessonA.ID,
		Questions: []domain.Question{{QuestionText: "Q", CorrectAnswer: "a"}}}
	quizB := &domain.Quiz{ID: primitive.NewObjectID(), LessonID: lessonB.ID,
		Questions: []domain.Question{{QuestionText: "Q", CorrectAnswer: "b"}}}

	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetByID", mock.Anything, quizA.ID).Return(quizA, nil)
	quizRepo.On("GetByID", mock.Anything, quizB.ID).Return(quizB, nil)

	lessonRepo := new(MockLessonRepo)
	lessonRepo.On("GetByID", mock.Anything, lessonA.ID).Return(lessonA, nil)
	lessonRepo.On("GetByID", mock.Anything, lessonB.ID).Return(lessonB, nil)
	lessonRepo.On("CountByCourseID", mock.Anything, courseID).Return(int64(2), nil)

	progressStore := &fakeProgressStore{records: map[primitive.ObjectID]*domain.Progress{}}
	userStore := &fakeUserStore{user: &domain.User{ID: userID, Name: "Student"}}

	uc := usecase.NewProgressUsecase(quizRepo, lessonRepo, progressStore, userStore)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := uc.SubmitQuiz(context.Background(), userID, quizA.ID, map[int]string{0: "a"})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := uc.SubmitQuiz(context.Background(), userID, quizB.ID, map[int]string{0: "b"})
		assert.NoError(t, err)
	}()
	wg.Wait()

	final, err := progressStore.GetByUserAndCourse(context.Background(), userID, courseID)
	assert.NoError(t, err)
	assert.Len(t, final.CompletedLessons, 2)
	assert.Len(t, final.QuizzesCompleted, 2)
	assert.Equal(t, float64(100), final.CompletionPercentage)
	assert.True(t, final.IsCourseCompleted)

	mirror, err := userStore.GetByID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, mirror.Progress, 1)
	assert.Len(t, mirror.Progress[0].CompletedLessons, 2)
}
