package usecase

import (
	"context"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type analyticsUsecase struct {
	userRepo     domain.UserRepository
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
}

func NewAnalyticsUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	pr domain.ProgressRepository,
) domain.AnalyticsUsecase {
	return &analyticsUsecase{userRepo: ur, courseRepo: cr, progressRepo: pr}
}

func (uc *analyticsUsecase) UserRoleDistribution(ctx context.Context) ([]domain.RoleCount, error) {
	return uc.userRepo.CountByRole(ctx)
}

func (uc *analyticsUsecase) CourseDifficultyDistribution(ctx context.Context) ([]domain.DifficultyCount, error) {
	return uc.courseRepo.CountByDifficulty(ctx)
}

func (uc *analyticsUsecase) QuizPerformance(ctx context.Context) ([]domain.QuizPerformance, error) {
	return uc.progressRepo.QuizPerformance(ctx)
}

// StudentProgress joins every progress record with its student and course
// for the admin dashboard.
func (uc *analyticsUsecase) StudentProgress(ctx context.Context) ([]domain.StudentProgressOverview, error) {
	records, err := uc.progressRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	userByID := make(map[primitive.ObjectID]*domain.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	courseByID := make(map[primitive.ObjectID]*domain.Course, len(courses))
	for i := range courses {
		courseByID[courses[i].ID] = &courses[i]
	}

	overview := make([]domain.StudentProgressOverview, 0, len(records))
	for _, p := range records {
		entry := domain.StudentProgressOverview{
			UserID:               p.UserID,
			CourseID:             p.CourseID,
			CompletedLessons:     len(p.CompletedLessons),
			CompletionPercentage: p.CompletionPercentage,
			IsCourseCompleted:    p.IsCourseCompleted,
		}
		if u, ok := userByID[p.UserID]; ok {
			entry.Name = u.Name
			entry.Email = u.Email
		}
		if c, ok := courseByID[p.CourseID]; ok {
			entry.CourseTitle = c.Title
		}
		overview = append(overview, entry)
	}
	return overview, nil
}
