package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type progressUsecase struct {
	quizRepo     domain.QuizRepository
	lessonRepo   domain.LessonRepository
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProgressUsecase(
	qr domain.QuizRepository,
	lr domain.LessonRepository,
	pr domain.ProgressRepository,
	ur domain.UserRepository,
) domain.ProgressUsecase {
	return &progressUsecase{
		quizRepo:     qr,
		lessonRepo:   lr,
		progressRepo: pr,
		userRepo:     ur,
		locks:        map[string]*sync.Mutex{},
	}
}

// lockFor returns the mutex serializing progress writes for one
// (student, course) pair. Submissions for different pairs run concurrently.
func (uc *progressUsecase) lockFor(userID, courseID primitive.ObjectID) *sync.Mutex {
	key := userID.Hex() + ":" + courseID.Hex()
	uc.mu.Lock()
	defer uc.mu.Unlock()
	l, ok := uc.locks[key]
	if !ok {
		l = &sync.Mutex{}
		uc.locks[key] = l
	}
	return l
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SubmitQuiz grades a student's answers and folds the result into their
// course progress. Answers are compared to the stored correct answer by
// exact string equality. The score is correct/total*100; submitting again
// replaces the previous score for the same quiz. The quiz's lesson counts
// as completed regardless of score.
func (uc *progressUsecase) SubmitQuiz(ctx context.Context, userID, quizID primitive.ObjectID, selectedAnswers map[int]string) (*domain.QuizSubmission, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	lesson, err := uc.lessonRepo.GetByID(ctx, quiz.LessonID)
	if err != nil {
		return nil, err
	}

	total := len(quiz.Questions)
	if total == 0 {
		return nil, errors.New("quiz has no questions")
	}
	correct := 0
	for i, q := range quiz.Questions {
		if answer, ok := selectedAnswers[i]; ok && answer == q.CorrectAnswer {
			correct++
		}
	}
	score := float64(correct) / float64(total) * 100

	lock := uc.lockFor(userID, lesson.CourseID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, lesson.CourseID)
	if errors.Is(err, domain.ErrNotFound) {
		progress = &domain.Progress{
			UserID:           userID,
			CourseID:         lesson.CourseID,
			CompletedLessons: []primitive.ObjectID{},
			QuizzesCompleted: []domain.QuizResult{},
		}
	} else if err != nil {
		return nil, err
	}

	hasLesson := false
	for _, id := range progress.CompletedLessons {
		if id == lesson.ID {
			hasLesson = true
			break
		}
	}
	if !hasLesson {
		progress.CompletedLessons = append(progress.CompletedLessons, lesson.ID)
	}

	hasQuiz := false
	for i := range progress.QuizzesCompleted {
		if progress.QuizzesCompleted[i].QuizID == quizID {
			progress.QuizzesCompleted[i].Score = score
			hasQuiz = true
			break
		}
	}
	if !hasQuiz {
		progress.QuizzesCompleted = append(progress.QuizzesCompleted, domain.QuizResult{QuizID: quizID, Score: score})
	}

	totalLessons, err := uc.lessonRepo.CountByCourseID(ctx, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	percentage := float64(100)
	if totalLessons > 0 {
		percentage = round2(float64(len(progress.CompletedLessons)) / float64(totalLessons) * 100)
		if percentage > 100 {
			percentage = 100
		}
	}
	progress.CompletionPercentage = percentage
	progress.IsCourseCompleted = int64(len(progress.CompletedLessons)) >= totalLessons
	progress.DateLastAccessed = time.Now()

	if err := uc.progressRepo.Save(ctx, progress); err != nil {
		return nil, err
	}

	if err := uc.syncUserMirror(ctx, userID, progress); err != nil {
		return nil, err
	}

	return &domain.QuizSubmission{Score: score, Progress: progress}, nil
}

// syncUserMirror copies the authoritative progress record onto the embedded
// per-course entry in the user document.
func (uc *progressUsecase) syncUserMirror(ctx context.Context, userID primitive.ObjectID, progress *domain.Progress) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i := range user.Progress {
		if user.Progress[i].CourseID == progress.CourseID {
			user.Progress[i].CompletedLessons = progress.CompletedLessons
			user.Progress[i].CompletionPercentage = progress.CompletionPercentage
			found = true
			break
		}
	}
	if !found {
		user.Progress = append(user.Progress, domain.UserProgress{
			CourseID:             progress.CourseID,
			CompletedLessons:     progress.CompletedLessons,
			CompletionPercentage: progress.CompletionPercentage,
			DateCreated:          time.Now(),
		})
	}

	return uc.userRepo.Update(ctx, user)
}
