package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const latestPostLimit = 15

type communityUsecase struct {
	communityRepo domain.CommunityRepository
	feedbackRepo  domain.FeedbackRepository
	platformRepo  domain.PlatformFeedbackRepository
	userRepo      domain.UserRepository
	courseRepo    domain.CourseRepository
}

func NewCommunityUsecase(
	cr domain.CommunityRepository,
	fr domain.FeedbackRepository,
	pfr domain.PlatformFeedbackRepository,
	ur domain.UserRepository,
	cor domain.CourseRepository,
) domain.CommunityUsecase {
	return &communityUsecase{
		communityRepo: cr,
		feedbackRepo:  fr,
		platformRepo:  pfr,
		userRepo:      ur,
		courseRepo:    cor,
	}
}

// ========== POSTS ==========

func (uc *communityUsecase) CreatePost(ctx context.Context, userID primitive.ObjectID, title, content string) (*domain.CommunityPost, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrValidation)
	}
	post := &domain.CommunityPost{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := uc.communityRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPosts returns the newest posts with each author's name and picture
// resolved.
func (uc *communityUsecase) GetPosts(ctx context.Context) ([]domain.PostWithAuthor, error) {
	posts, err := uc.communityRepo.LatestPosts(ctx, latestPostLimit)
	if err != nil {
		return nil, err
	}

	authors := map[primitive.ObjectID]*domain.User{}
	result := make([]domain.PostWithAuthor, 0, len(posts))
	for _, p := range posts {
		author, ok := authors[p.UserID]
		if !ok {
			author, err = uc.userRepo.GetByID(ctx, p.UserID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			authors[p.UserID] = author
		}
		entry := domain.PostWithAuthor{CommunityPost: p}
		if author != nil {
			entry.AuthorName = author.Name
			entry.AuthorPic = author.ProfilePic
		}
		result = append(result, entry)
	}
	return result, nil
}

func (uc *communityUsecase) AddComment(ctx context.Context, userID, postID primitive.ObjectID, text string) error {
	if text == "" {
		return fmt.Errorf("%w: comment text is required", domain.ErrValidation)
	}
	return uc.communityRepo.AddComment(ctx, postID, domain.Comment{
		UserID: userID,
		Text:   text,
		Date:   time.Now(),
	})
}

// ToggleLike adds the user's like if absent, removes it if present, and
// returns the resulting like count.
func (uc *communityUsecase) ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (int, error) {
	post, err := uc.communityRepo.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}

	likes := make([]primitive.ObjectID, 0, len(post.Likes)+1)
	removed := false
	for _, id := range post.Likes {
		if id == userID {
			removed = true
			continue
		}
		likes = append(likes, id)
	}
	if !removed {
		likes = append(likes, userID)
	}

	if err := uc.communityRepo.SetLikes(ctx, postID, likes); err != nil {
		return 0, err
	}
	return len(likes), nil
}

// ========== COURSE FEEDBACK ==========

// SubmitFeedback records one review per student per course.
func (uc *communityUsecase) SubmitFeedback(ctx context.Context, studentID, courseID primitive.ObjectID, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return err
	}

	_, err := uc.feedbackRepo.GetByCourseAndStudent(ctx, courseID, studentID)
	if err == nil {
		return fmt.Errorf("%w: feedback already submitted for this course", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	return uc.feedbackRepo.Create(ctx, &domain.CourseFeedback{
		CourseID:  courseID,
		StudentID: studentID,
		Rating:    rating,
		Comment:   comment,
	})
}

// ========== PLATFORM FEEDBACK ==========

// SubmitPlatformFeedback records a testimonial about the platform. All fields
// are required and the rating follows the usual 1..5 scale.
func (uc *communityUsecase) SubmitPlatformFeedback(ctx context.Context, name, email, message string, rating int) error {
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("%w: name, email and message are required", domain.ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	return uc.platformRepo.Create(ctx, &domain.PlatformFeedback{
		Name:    name,
		Email:   email,
		Message: message,
		Rating:  rating,
	})
}

// PlatformTestimonials returns the five newest entries rated 3 or above,
// used on the landing page.
func (uc *communityUsecase) PlatformTestimonials(ctx context.Context) ([]domain.PlatformFeedback, error) {
	return uc.platformRepo.TopEntries(ctx, 3, 5, 5)
}

// CourseReviews returns the newest well rated reviews for a course with the
// reviewer names resolved.
func (uc *communityUsecase) CourseReviews(ctx context.Context, courseID primitive.ObjectID) ([]domain.ReviewWithAuthor, error) {
	reviews, err := uc.feedbackRepo.TopReviews(ctx, courseID, 3, 5)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		entry := domain.ReviewWithAuthor{CourseFeedback: r}
		student, err := uc.userRepo.GetByID(ctx, r.StudentID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if student != nil {
			entry.StudentName = student.Name
		}
		result = append(result, entry)
	}
	return result, nil
}
