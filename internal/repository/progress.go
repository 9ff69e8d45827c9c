package repository

import (
	"context"
	"errors"
	"time"

	"codelearn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) collection() *mongo.Collection {
	return r.db.Collection("users")
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Progress == nil {
		user.Progress = []domain.UserProgress{}
	}
	_, err := r.collection().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, hashed string) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"email": email},
		bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) CountByRole(ctx context.Context) ([]domain.RoleCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []domain.RoleCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ========== PROGRESS REPOSITORY ==========

type progressRepo struct {
	db *mongo.Database
}

func NewProgressRepository(db *mongo.Database) domain.ProgressRepository {
	return &progressRepo{db}
}

func (r *progressRepo) collection() *mongo.Collection {
	return r.db.Collection("progress")
}

func (r *progressRepo) GetByUserAndCourse(ctx context.Context, userID, courseID primitive.ObjectID) (*domain.Progress, error) {
	var progress domain.Progress
	err := r.collection().FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Progress, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.Progress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *progressRepo) GetAll(ctx context.Context) ([]domain.Progress, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.Progress
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Save upserts by (user_id, course_id) so the unique index is honored even
// when the caller built the record before any document existed.
func (r *progressRepo) Save(ctx context.Context, progress *domain.Progress) error {
	if progress.ID.IsZero() {
		progress.ID = primitive.NewObjectID()
	}
	filter := bson.M{"user_id": progress.UserID, "course_id": progress.CourseID}
	update := bson.M{
		"$set": bson.M{
			"completed_lessons":     progress.CompletedLessons,
			"quizzes_completed":     progress.QuizzesCompleted,
			"completion_percentage": progress.CompletionPercentage,
			"is_course_completed":   progress.IsCourseCompleted,
			"date_last_accessed":    progress.DateLastAccessed,
		},
		"$setOnInsert": bson.M{
			"_id":       progress.ID,
			"user_id":   progress.UserID,
			"course_id": progress.CourseID,
		},
	}
	_, err := r.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// QuizPerformance computes the average score and attempt count per quiz
// across every progress document.
func (r *progressRepo) QuizPerformance(ctx context.Context) ([]domain.QuizPerformance, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$quizzes_completed"}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$quizzes_completed.quiz_id",
			"average_score": bson.M{"$avg": "$quizzes_completed.score"},
			"attempts":      bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"average_score": -1}}},
	}
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var perf []domain.QuizPerformance
	if err := cursor.All(ctx, &perf); err != nil {
		return nil, err
	}
	return perf, nil
}
