package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, email, hashed string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context) ([]RoleCount, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetAll(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Course, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error
	RemoveLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error
	CountByDifficulty(ctx context.Context) ([]DifficultyCount, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Lesson, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]Lesson, error)
	GetAll(ctx context.Context) ([]Lesson, error)
	Update(ctx context.Context, lesson *Lesson) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByCourseID(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Quiz, error)
	GetByLessonID(ctx context.Context, lessonID primitive.ObjectID) (*Quiz, error)
	GetByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) ([]Quiz, error)
	Update(ctx context.Context, quiz *Quiz) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProgressRepository interface {
	GetByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*Progress, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]Progress, error)
	GetAll(ctx context.Context) ([]Progress, error)
	Save(ctx context.Context, progress *Progress) error
	QuizPerformance(ctx context.Context) ([]QuizPerformance, error)
}

type CertificatePolicyRepository interface {
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) (*CertificatePolicy, error)
	GetAll(ctx context.Context) ([]CertificatePolicy, error)
	Upsert(ctx context.Context, policy *CertificatePolicy) (created bool, err error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *CourseFeedback) error
	GetByCourseAndStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*CourseFeedback, error)
	TopReviews(ctx context.Context, courseID primitive.ObjectID, minRating, limit int) ([]CourseFeedback, error)
}

type PlatformFeedbackRepository interface {
	Create(ctx context.Context, feedback *PlatformFeedback) error
	TopEntries(ctx context.Context, minRating, maxRating, limit int) ([]PlatformFeedback, error)
}

type CommunityRepository interface {
	CreatePost(ctx context.Context, post *CommunityPost) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*CommunityPost, error)
	LatestPosts(ctx context.Context, limit int) ([]CommunityPost, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment Comment) error
	SetLikes(ctx context.Context, postID primitive.ObjectID, likes []primitive.ObjectID) error
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *Challenge) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Challenge, error)
	GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]Challenge, error)
	Update(ctx context.Context, challenge *Challenge) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OTPRepository interface {
	Create(ctx context.Context, otp *OTP) error
	GetByEmailAndCode(ctx context.Context, email, code string) (*OTP, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// CodeJudge is the AI collaborator used for challenge grading and the
// assistant endpoint. Implementations live outside the core.
type CodeJudge interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ========== USECASES ==========

type AuthUsecase interface {
	SendOTP(ctx context.Context, email, otpType string) error
	VerifyOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, user *User) error
	Login(ctx context.Context, email, password string) (string, error)
	ResetPassword(ctx context.Context, email, password string) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, name, password string) error
	UpdateProfilePic(ctx context.Context, userID primitive.ObjectID, picURL string) error
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetAllCourses(ctx context.Context) ([]Course, error)
	GetCourseByID(ctx context.Context, id primitive.ObjectID) (*Course, error)
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	SetCourseThumbnail(ctx context.Context, courseID primitive.ObjectID, url string) error

	AddLesson(ctx context.Context, lesson *Lesson) error
	GetLessonByID(ctx context.Context, id primitive.ObjectID) (*Lesson, error)
	GetLessons(ctx context.Context, courseID primitive.ObjectID) ([]Lesson, error)
	UpdateLesson(ctx context.Context, lesson *Lesson) error
	DeleteLesson(ctx context.Context, id primitive.ObjectID) error
	LessonsWithoutQuizzes(ctx context.Context, courseID primitive.ObjectID) ([]Lesson, error)

	AddQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id primitive.ObjectID) (*Quiz, error)
	GetQuizzesByCourse(ctx context.Context, courseID primitive.ObjectID) ([]Quiz, error)
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id primitive.ObjectID) error

	Enroll(ctx context.Context, userID, courseID primitive.ObjectID) error
	EnrolledCourses(ctx context.Context, userID primitive.ObjectID) ([]Course, error)
	LessonsWithGating(ctx context.Context, courseID, userID primitive.ObjectID) ([]GatedLesson, error)
}

type ProgressUsecase interface {
	SubmitQuiz(ctx context.Context, userID, quizID primitive.ObjectID, selectedAnswers map[int]string) (*QuizSubmission, error)
}

type CertificateUsecase interface {
	UpsertPolicy(ctx context.Context, courseID primitive.ObjectID, minLectures int) (created bool, err error)
	DeletePolicy(ctx context.Context, id primitive.ObjectID) error
	PolicyOverview(ctx context.Context) (*CoursePolicyOverview, error)
	EligibleCertificates(ctx context.Context, userID primitive.ObjectID) ([]EligibleCertificate, error)
	DownloadCertificate(ctx context.Context, userID, courseID primitive.ObjectID) (*CertificateData, error)
}

type CommunityUsecase interface {
	CreatePost(ctx context.Context, userID primitive.ObjectID, title, content string) (*CommunityPost, error)
	GetPosts(ctx context.Context) ([]PostWithAuthor, error)
	AddComment(ctx context.Context, userID, postID primitive.ObjectID, text string) error
	ToggleLike(ctx context.Context, userID, postID primitive.ObjectID) (int, error)

	SubmitFeedback(ctx context.Context, studentID, courseID primitive.ObjectID, rating int, comment string) error
	CourseReviews(ctx context.Context, courseID primitive.ObjectID) ([]ReviewWithAuthor, error)

	SubmitPlatformFeedback(ctx context.Context, name, email, message string, rating int) error
	PlatformTestimonials(ctx context.Context) ([]PlatformFeedback, error)
}

type ChallengeUsecase interface {
	AddChallenge(ctx context.Context, challenge *Challenge) error
	GetChallenges(ctx context.Context, courseID primitive.ObjectID) ([]Challenge, error)
	UpdateChallenge(ctx context.Context, challenge *Challenge) error
	DeleteChallenge(ctx context.Context, id primitive.ObjectID) error
	SubmitChallenge(ctx context.Context, userID, challengeID primitive.ObjectID, code, language string) (*ChallengeVerdict, error)
	Assist(ctx context.Context, query string) (string, error)
}

type AnalyticsUsecase interface {
	UserRoleDistribution(ctx context.Context) ([]RoleCount, error)
	CourseDifficultyDistribution(ctx context.Context) ([]DifficultyCount, error)
	QuizPerformance(ctx context.Context) ([]QuizPerformance, error)
	StudentProgress(ctx context.Context) ([]StudentProgressOverview, error)
}
