package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codelearn-backend/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type certificateUsecase struct {
	policyRepo   domain.CertificatePolicyRepository
	courseRepo   domain.CourseRepository
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository
}

func NewCertificateUsecase(
	cpr domain.CertificatePolicyRepository,
	cr domain.CourseRepository,
	pr domain.ProgressRepository,
	ur domain.UserRepository,
) domain.CertificateUsecase {
	return &certificateUsecase{
		policyRepo:   cpr,
		courseRepo:   cr,
		progressRepo: pr,
		userRepo:     ur,
	}
}

func (uc *certificateUsecase) UpsertPolicy(ctx context.Context, courseID primitive.ObjectID, minLectures int) (bool, error) {
	if minLectures < 1 {
		return false, fmt.Errorf("%w: minimum lectures must be at least 1", domain.ErrValidation)
	}
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return false, err
	}
	return uc.policyRepo.Upsert(ctx, &domain.CertificatePolicy{
		CourseID:            courseID,
		MinLecturesRequired: minLectures,
	})
}

func (uc *certificateUsecase) DeletePolicy(ctx context.Context, id primitive.ObjectID) error {
	return uc.policyRepo.Delete(ctx, id)
}

// PolicyOverview splits the catalog into courses that already have a
// certificate policy and those that do not.
func (uc *certificateUsecase) PolicyOverview(ctx context.Context) (*domain.CoursePolicyOverview, error) {
	policies, err := uc.policyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := uc.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	titleByCourse := make(map[primitive.ObjectID]string, len(courses))
	for _, c := range courses {
		titleByCourse[c.ID] = c.Title
	}
	covered := make(map[primitive.ObjectID]bool, len(policies))

	overview := &domain.CoursePolicyOverview{
		WithPolicy:    []domain.EligibleCertificate{},
		WithoutPolicy: []domain.Course{},
	}
	for _, p := range policies {
		covered[p.CourseID] = true
		overview.WithPolicy = append(overview.WithPolicy, domain.EligibleCertificate{
			PolicyID:            p.ID,
			CourseID:            p.CourseID,
			CourseTitle:         titleByCourse[p.CourseID],
			MinLecturesRequired: p.MinLecturesRequired,
		})
	}
	for _, c := range courses {
		if !covered[c.ID] {
			overview.WithoutPolicy = append(overview.WithoutPolicy, c)
		}
	}
	return overview, nil
}

// EligibleCertificates lists the certificates a student can already download:
// courses with a policy where the student's completed lesson count has reached
// the required threshold.
func (uc *certificateUsecase) EligibleCertificates(ctx context.Context, userID primitive.ObjectID) ([]domain.EligibleCertificate, error) {
	records, err := uc.progressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	progressByCourse := make(map[primitive.ObjectID]*domain.Progress, len(records))
	for i := range records {
		progressByCourse[records[i].CourseID] = &records[i]
	}

	policies, err := uc.policyRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	eligible := []domain.EligibleCertificate{}
	for _, p := range policies {
		progress, ok := progressByCourse[p.CourseID]
		if !ok || len(progress.CompletedLessons) < p.MinLecturesRequired {
			continue
		}
		course, err := uc.courseRepo.GetByID(ctx, p.CourseID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		eligible = append(eligible, domain.EligibleCertificate{
			PolicyID:            p.ID,
			CourseID:            p.CourseID,
			CourseTitle:         course.Title,
			MinLecturesRequired: p.MinLecturesRequired,
		})
	}
	return eligible, nil
}

// DownloadCertificate re-checks eligibility at download time and returns the
// data needed to render the certificate.
func (uc *certificateUsecase) DownloadCertificate(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.CertificateData, error) {
	policy, err := uc.policyRepo.GetByCourseID(ctx, courseID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: no certificate configured for this course", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	progress, err := uc.progressRepo.GetByUserAndCourse(ctx, userID, courseID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: Complete required lectures to download the certificate.", domain.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if len(progress.CompletedLessons) < policy.MinLecturesRequired {
		return nil, fmt.Errorf("%w: Complete required lectures to download the certificate.", domain.ErrForbidden)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &domain.CertificateData{
		Serial:      uuid.NewString(),
		StudentName: user.Name,
		CourseID:    courseID,
		CourseTitle: course.Title,
		Percentage:  progress.CompletionPercentage,
		IssuedAt:    time.Now(),
	}, nil
}
