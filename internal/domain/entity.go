package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent Role = "Student"
	RoleAdmin   Role = "Admin"
)

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Role       Role               `json:"role" bson:"role"`
	ProfilePic string             `json:"profile_pic" bson:"profile_pic"`
	Progress   []UserProgress     `json:"progress" bson:"progress"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserProgress is the per-course mirror embedded in the user document. It is
// kept in sync with the progress collection on every quiz submission.
type UserProgress struct {
	CourseID             primitive.ObjectID   `json:"course_id" bson:"course_id"`
	CompletedLessons     []primitive.ObjectID `json:"completed_lessons" bson:"completed_lessons"`
	CompletionPercentage float64              `json:"completion_percentage" bson:"completion_percentage"`
	DateCreated          time.Time            `json:"date_created" bson:"date_created"`
}

type Course struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	Difficulty  string               `json:"difficulty" bson:"difficulty"`
	Category    string               `json:"category" bson:"category"`
	Thumbnail   string               `json:"thumbnail" bson:"thumbnail"`
	Lessons     []primitive.ObjectID `json:"lessons" bson:"lessons"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}

type CodeExample struct {
	Language string `json:"language" bson:"language"`
	Code     string `json:"code" bson:"code"`
}

type Lesson struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID     primitive.ObjectID `json:"course_id" bson:"course_id"`
	Title        string             `json:"title" bson:"title"`
	Content      string             `json:"content" bson:"content"`
	VideoURL     string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	Order        int                `json:"order" bson:"order"`
	CodeExamples []CodeExample      `json:"code_examples,omitempty" bson:"code_examples,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

type Question struct {
	QuestionText  string   `json:"question_text" bson:"question_text"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correct_answer" bson:"correct_answer"`
}

type Quiz struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	LessonID  primitive.ObjectID `json:"lesson_id" bson:"lesson_id"`
	Questions []Question         `json:"questions" bson:"questions"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type QuizResult struct {
	QuizID primitive.ObjectID `json:"quiz_id" bson:"quiz_id"`
	Score  float64            `json:"score" bson:"score"`
}

// Progress is the authoritative per-(student, course) record. A unique
// compound index on (user_id, course_id) prevents duplicate documents.
type Progress struct {
	ID                   primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID               primitive.ObjectID   `json:"user_id" bson:"user_id"`
	CourseID             primitive.ObjectID   `json:"course_id" bson:"course_id"`
	CompletedLessons     []primitive.ObjectID `json:"completed_lessons" bson:"completed_lessons"`
	QuizzesCompleted     []QuizResult         `json:"quizzes_completed" bson:"quizzes_completed"`
	CompletionPercentage float64              `json:"completion_percentage" bson:"completion_percentage"`
	IsCourseCompleted    bool                 `json:"is_course_completed" bson:"is_course_completed"`
	DateLastAccessed     time.Time            `json:"date_last_accessed" bson:"date_last_accessed"`
}

// CertificatePolicy sets how many lessons a student must finish before the
// certificate for a course becomes available. One per course, upserted.
type CertificatePolicy struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID            primitive.ObjectID `json:"course_id" bson:"course_id"`
	MinLecturesRequired int                `json:"min_lectures_required" bson:"min_lectures_required"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
}

type CourseFeedback struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID  primitive.ObjectID `json:"course_id" bson:"course_id"`
	StudentID primitive.ObjectID `json:"student_id" bson:"student_id"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// PlatformFeedback is a testimonial about the platform itself, open to anyone
// with a name and an email. Course reviews live in CourseFeedback instead.
type PlatformFeedback struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Message   string             `json:"message" bson:"message"`
	Rating    int                `json:"rating" bson:"rating"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type Comment struct {
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	Text   string             `json:"text" bson:"text"`
	Date   time.Time          `json:"date" bson:"date"`
}

type CommunityPost struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID   `json:"user_id" bson:"user_id"`
	Title       string               `json:"title" bson:"title"`
	Content     string               `json:"content" bson:"content"`
	Comments    []Comment            `json:"comments" bson:"comments"`
	Likes       []primitive.ObjectID `json:"likes" bson:"likes"`
	DateCreated time.Time            `json:"date_created" bson:"date_created"`
}

type TestCase struct {
	Input          string `json:"input" bson:"input"`
	ExpectedOutput string `json:"expected_output" bson:"expected_output"`
}

type Challenge struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID    primitive.ObjectID `json:"course_id" bson:"course_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	StarterCode string             `json:"starter_code" bson:"starter_code"`
	TestCases   []TestCase         `json:"test_cases" bson:"test_cases"`
	Difficulty  string             `json:"difficulty" bson:"difficulty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// OTP entries expire via a TTL index on created_at.
type OTP struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Code      string             `json:"code" bson:"code"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ========== RESPONSE DTOs ==========

// QuestionView is a question as shown to a student taking a quiz. It
// deliberately carries no correct answer.
type QuestionView struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

// QuizView is the student-facing shape of a quiz.
type QuizView struct {
	ID        primitive.ObjectID `json:"id"`
	Questions []QuestionView     `json:"questions"`
}

// GatedLesson is a lesson annotated with its quiz and per-student unlock state.
type GatedLesson struct {
	ID         primitive.ObjectID `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Quiz       *QuizView          `json:"quiz"`
	IsUnlocked bool               `json:"is_unlocked"`
}

// QuizSubmission carries the computed score and the updated progress record.
type QuizSubmission struct {
	Score    float64   `json:"score"`
	Progress *Progress `json:"progress"`
}

// EligibleCertificate pairs a certificate policy with its course title.
type EligibleCertificate struct {
	PolicyID            primitive.ObjectID `json:"policy_id"`
	CourseID            primitive.ObjectID `json:"course_id"`
	CourseTitle         string             `json:"course_title"`
	MinLecturesRequired int                `json:"min_lectures_required"`
}

// CertificateData is everything the rendering collaborator needs.
type CertificateData struct {
	Serial      string             `json:"serial"`
	StudentName string             `json:"student_name"`
	CourseID    primitive.ObjectID `json:"course_id"`
	CourseTitle string             `json:"course_title"`
	Percentage  float64            `json:"percentage"`
	IssuedAt    time.Time          `json:"issued_at"`
}

// CoursePolicyOverview lists which courses have a certificate policy attached.
type CoursePolicyOverview struct {
	WithPolicy    []EligibleCertificate `json:"courses_with_certificate"`
	WithoutPolicy []Course              `json:"courses_without_certificate"`
}

// PostWithAuthor decorates a community post with display data.
type PostWithAuthor struct {
	CommunityPost
	AuthorName string `json:"author_name"`
	AuthorPic  string `json:"author_pic"`
}

// ReviewWithAuthor is a course review with the reviewer's name resolved.
type ReviewWithAuthor struct {
	CourseFeedback
	StudentName string `json:"student_name"`
}

// ChallengeVerdict is the outcome of an AI-judged challenge submission.
type ChallengeVerdict struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// ========== ANALYTICS DTOs ==========

type RoleCount struct {
	Role  string `json:"role" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty" bson:"_id"`
	Count      int    `json:"count" bson:"count"`
}

type QuizPerformance struct {
	QuizID       primitive.ObjectID `json:"quiz_id" bson:"_id"`
	AverageScore float64            `json:"average_score" bson:"average_score"`
	Attempts     int                `json:"attempts" bson:"attempts"`
}

type StudentProgressOverview struct {
	UserID               primitive.ObjectID `json:"user_id"`
	Name                 string             `json:"name"`
	Email                string             `json:"email"`
	CourseID             primitive.ObjectID `json:"course_id"`
	CourseTitle          string             `json:"course_title"`
	CompletedLessons     int                `json:"completed_lessons"`
	CompletionPercentage float64            `json:"completion_percentage"`
	IsCourseCompleted    bool               `json:"is_course_completed"`
}
