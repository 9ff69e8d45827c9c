package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type courseUsecase struct {
	courseRepo   domain.CourseRepository
	lessonRepo   domain.LessonRepository
	quizRepo     domain.QuizRepository
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository
}

func NewCourseUsecase(
	cr domain.CourseRepository,
	lr domain.LessonRepository,
	qr domain.QuizRepository,
	pr domain.ProgressRepository,
	ur domain.UserRepository,
) domain.CourseUsecase {
	return &courseUsecase{
		courseRepo:   cr,
		lessonRepo:   lr,
		quizRepo:     qr,
		progressRepo: pr,
		userRepo:     ur,
	}
}

// ========== COURSES ==========

func (uc *courseUsecase) CreateCourse(ctx context.Context, course *domain.Course) error {
	return uc.courseRepo.Create(ctx, course)
}

func (uc *courseUsecase) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return uc.courseRepo.GetAll(ctx)
}

func (uc *courseUsecase) GetCourseByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	return uc.courseRepo.GetByID(ctx, id)
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, course *domain.Course) error {
	return uc.courseRepo.Update(ctx, course)
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	return uc.courseRepo.Delete(ctx, id)
}

func (uc *courseUsecase) SetCourseThumbnail(ctx context.Context, courseID primitive.ObjectID, url string) error {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	course.Thumbnail = url
	return uc.courseRepo.Update(ctx, course)
}

// ========== LESSONS ==========

// AddLesson inserts the lesson and registers its id on the parent course.
// Lessons with no explicit order are appended after the existing ones.
func (uc *courseUsecase) AddLesson(ctx context.Context, lesson *domain.Lesson) error {
	if _, err := uc.courseRepo.GetByID(ctx, lesson.CourseID); err != nil {
		return err
	}

	if lesson.Order == 0 {
		count, err := uc.lessonRepo.CountByCourseID(ctx, lesson.CourseID)
		if err != nil {
			return err
		}
		lesson.Order = int(count) + 1
	}

	if err := uc.lessonRepo.Create(ctx, lesson); err != nil {
		return err
	}
	return uc.courseRepo.AddLessonRef(ctx, lesson.CourseID, lesson.ID)
}

func (uc *courseUsecase) GetLessonByID(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	return uc.lessonRepo.GetByID(ctx, id)
}

func (uc *courseUsecase) GetLessons(ctx context.Context, courseID primitive.ObjectID) ([]domain.Lesson, error) {
	return uc.lessonRepo.GetByCourseID(ctx, courseID)
}

func (uc *courseUsecase) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	return uc.lessonRepo.Update(ctx, lesson)
}

func (uc *courseUsecase) DeleteLesson(ctx context.Context, id primitive.ObjectID) error {
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	return uc.courseRepo.RemoveLessonRef(ctx, lesson.CourseID, lesson.ID)
}

// LessonsWithoutQuizzes lists the lessons of a course that have no quiz yet,
// used by the admin quiz builder.
func (uc *courseUsecase) LessonsWithoutQuizzes(ctx context.Context, courseID primitive.ObjectID) ([]domain.Lesson, error) {
	lessons, err := uc.lessonRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]primitive.ObjectID, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	quizzes, err := uc.quizRepo.GetByLessonIDs(ctx, lessonIDs)
	if err != nil {
		return nil, err
	}

	hasQuiz := make(map[primitive.ObjectID]bool, len(quizzes))
	for _, q := range quizzes {
		hasQuiz[q.LessonID] = true
	}

	result := []domain.Lesson{}
	for _, l := range lessons {
		if !hasQuiz[l.ID] {
			result = append(result, l)
		}
	}
	return result, nil
}

// ========== QUIZZES ==========

func (uc *courseUsecase) AddQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if _, err := uc.lessonRepo.GetByID(ctx, quiz.LessonID); err != nil {
		return err
	}
	existing, err := uc.quizRepo.GetByLessonID(ctx, quiz.LessonID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: lesson already has a quiz", domain.ErrConflict)
	}
	return uc.quizRepo.Create(ctx, quiz)
}

func (uc *courseUsecase) GetQuizByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	return uc.quizRepo.GetByID(ctx, id)
}

func (uc *courseUsecase) GetQuizzesByCourse(ctx context.Context, courseID primitive.ObjectID) ([]domain.Quiz, error) {
	lessons, err := uc.lessonRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lessonIDs := make([]primitive.ObjectID, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}
	return uc.quizRepo.GetByLessonIDs(ctx, lessonIDs)
}

func (uc *courseUsecase) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	return uc.quizRepo.Update(ctx, quiz)
}

func (uc *courseUsecase) DeleteQuiz(ctx context.Context, id primitive.ObjectID) error {
	return uc.quizRepo.Delete(ctx, id)
}

// ========== ENROLLMENT ==========

// Enroll creates the student's progress record for the course and mirrors it
// on the user document.
func (uc *courseUsecase) Enroll(ctx context.Context, userID, courseID primitive.ObjectID) error {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}

	_, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return fmt.Errorf("%w: already enrolled in this course", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	progress := &domain.Progress{
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: []primitive.ObjectID{},
		QuizzesCompleted: []domain.QuizResult{},
		DateLastAccessed: time.Now(),
	}
	if err := uc.progressRepo.Save(ctx, progress); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for _, p := range user.Progress {
		if p.CourseID == courseID {
			return nil
		}
	}
	user.Progress = append(user.Progress, domain.UserProgress{
		CourseID:         courseID,
		CompletedLessons: []primitive.ObjectID{},
		DateCreated:      time.Now(),
	})
	return uc.userRepo.Update(ctx, user)
}

func (uc *courseUsecase) EnrolledCourses(ctx context.Context, userID primitive.ObjectID) ([]domain.Course, error) {
	records, err := uc.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]primitive.ObjectID, len(records))
	for i, p := range records {
		courseIDs[i] = p.CourseID
	}
	return uc.courseRepo.GetByIDs(ctx, courseIDs)
}

// ========== GATED LESSON LIST ==========

// LessonsWithGating returns the ordered lessons of a course with each one's
// quiz attached and an unlock flag computed for the student. The first lesson
// is always unlocked; each later lesson unlocks only when every lesson before
// it is completed. A lesson with no quiz can never be completed, so it keeps
// everything after it locked. Quizzes are stripped to their questions and
// options; correct answers never leave the server here.
func (uc *courseUsecase) LessonsWithGating(ctx context.Context, courseID, userID primitive.ObjectID) ([]domain.GatedLesson, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lessons, err := uc.lessonRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessonIDs := make([]primitive.ObjectID, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}
	quizzes, err := uc.quizRepo.GetByLessonIDs(ctx, lessonIDs)
	if err != nil {
		return nil, err
	}
	quizByLesson := make(map[primitive.ObjectID]*domain.QuizView, len(quizzes))
	for i := range quizzes {
		quizByLesson[quizzes[i].LessonID] = quizView(&quizzes[i])
	}

	completed := make(map[primitive.ObjectID]bool)
	progress, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if progress != nil {
		for _, id := range progress.CompletedLessons {
			completed[id] = true
		}
	}

	gated := make([]domain.GatedLesson, 0, len(lessons))
	unlocked := true
	for _, l := range lessons {
		gated = append(gated, domain.GatedLesson{
			ID:         l.ID,
			Title:      l.Title,
			Content:    l.Content,
			Quiz:       quizByLesson[l.ID],
			IsUnlocked: unlocked,
		})
		unlocked = unlocked && completed[l.ID]
	}
	return gated, nil
}

// quizView copies a quiz without the answer key.
func quizView(quiz *domain.Quiz) *domain.QuizView {
	view := &domain.QuizView{
		ID:        quiz.ID,
		Questions: make([]domain.QuestionView, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		view.Questions[i] = domain.QuestionView{
			QuestionText: q.QuestionText,
			Options:      q.Options,
		}
	}
	return view
}
