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

// ========== COURSE REPOSITORY ==========

type courseRepo struct {
	db *mongo.Database
}

func NewCourseRepository(db *mongo.Database) domain.CourseRepository {
	return &courseRepo{db}
}

func (r *courseRepo) collection() *mongo.Collection {
	return r.db.Collection("courses")
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	if course.Lessons == nil {
		course.Lessons = []primitive.ObjectID{}
	}
	_, err := r.collection().InsertOne(ctx, course)
	return err
}

func (r *courseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	var course domain.Course
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Course, error) {
	if len(ids) == 0 {
		return []domain.Course{}, nil
	}
	cursor, err := r.collection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var courses []domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	course.UpdatedAt = time.Now()
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": course.ID}, bson.M{"$set": bson.M{
		"title":       course.Title,
		"description": course.Description,
		"difficulty":  course.Difficulty,
		"category":    course.Category,
		"thumbnail":   course.Thumbnail,
		"updated_at":  course.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *courseRepo) AddLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error {
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": courseID},
		bson.M{"$addToSet": bson.M{"lessons": lessonID}})
	return err
}

func (r *courseRepo) RemoveLessonRef(ctx context.Context, courseID, lessonID primitive.ObjectID) error {
	_, err := r.collection().UpdateOne(ctx, bson.M{"_id": courseID},
		bson.M{"$pull": bson.M{"lessons": lessonID}})
	return err
}

func (r *courseRepo) CountByDifficulty(ctx context.Context) ([]domain.DifficultyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$difficulty", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []domain.DifficultyCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ========== LESSON REPOSITORY ==========

type lessonRepo struct {
	db *mongo.Database
}

func NewLessonRepository(db *mongo.Database) domain.LessonRepository {
	return &lessonRepo{db}
}

func (r *lessonRepo) collection() *mongo.Collection {
	return r.db.Collection("lessons")
}

func (r *lessonRepo) Create(ctx context.Context, lesson *domain.Lesson) error {
	lesson.ID = primitive.NewObjectID()
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = lesson.CreatedAt
	_, err := r.collection().InsertOne(ctx, lesson)
	return err
}

func (r *lessonRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetByCourseID returns lessons sorted by their explicit order field, with
// the insertion id as a tiebreaker.
func (r *lessonRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Lesson, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lessons []domain.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) GetAll(ctx context.Context) ([]domain.Lesson, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lessons []domain.Lesson
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepo) Update(ctx context.Context, lesson *domain.Lesson) error {
	lesson.UpdatedAt = time.Now()
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": lesson.ID}, bson.M{"$set": bson.M{
		"course_id":  lesson.CourseID,
		"title":      lesson.Title,
		"content":    lesson.Content,
		"video_url":  lesson.VideoURL,
		"order":      lesson.Order,
		"updated_at": lesson.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lessonRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *lessonRepo) CountByCourseID(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{"course_id": courseID})
}

// ========== QUIZ REPOSITORY ==========

type quizRepo struct {
	db *mongo.Database
}

func NewQuizRepository(db *mongo.Database) domain.QuizRepository {
	return &quizRepo{db}
}

func (r *quizRepo) collection() *mongo.Collection {
	return r.db.Collection("quizzes")
}

func (r *quizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	quiz.ID = primitive.NewObjectID()
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	_, err := r.collection().InsertOne(ctx, quiz)
	return err
}

func (r *quizRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetByLessonID(ctx context.Context, lessonID primitive.ObjectID) (*domain.Quiz, error) {
	var quiz domain.Quiz
	err := r.collection().FindOne(ctx, bson.M{"lesson_id": lessonID}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetByLessonIDs(ctx context.Context, lessonIDs []primitive.ObjectID) ([]domain.Quiz, error) {
	if len(lessonIDs) == 0 {
		return []domain.Quiz{}, nil
	}
	cursor, err := r.collection().Find(ctx, bson.M{"lesson_id": bson.M{"$in": lessonIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []domain.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) Update(ctx context.Context, quiz *domain.Quiz) error {
	quiz.UpdatedAt = time.Now()
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": quiz.ID}, bson.M{"$set": bson.M{
		"questions":  quiz.Questions,
		"updated_at": quiz.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *quizRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
