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

// ========== CERTIFICATE POLICY REPOSITORY ==========

type certificatePolicyRepo struct {
	db *mongo.Database
}

func NewCertificatePolicyRepository(db *mongo.Database) domain.CertificatePolicyRepository {
	return &certificatePolicyRepo{db}
}

func (r *certificatePolicyRepo) collection() *mongo.Collection {
	return r.db.Collection("certificates")
}

func (r *certificatePolicyRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) (*domain.CertificatePolicy, error) {
	var policy domain.CertificatePolicy
	err := r.collection().FindOne(ctx, bson.M{"course_id": courseID}).Decode(&policy)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *certificatePolicyRepo) GetAll(ctx context.Context) ([]domain.CertificatePolicy, error) {
	cursor, err := r.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var policies []domain.CertificatePolicy
	if err := cursor.All(ctx, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// Upsert creates the policy for a course or updates its threshold. The
// returned flag reports whether a new document was inserted.
func (r *certificatePolicyRepo) Upsert(ctx context.Context, policy *domain.CertificatePolicy) (bool, error) {
	if policy.ID.IsZero() {
		policy.ID = primitive.NewObjectID()
	}
	res, err := r.collection().UpdateOne(ctx,
		bson.M{"course_id": policy.CourseID},
		bson.M{
			"$set": bson.M{"min_lectures_required": policy.MinLecturesRequired},
			"$setOnInsert": bson.M{
				"_id":        policy.ID,
				"course_id":  policy.CourseID,
				"created_at": time.Now(),
			},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (r *certificatePolicyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ========== FEEDBACK REPOSITORY ==========

type feedbackRepo struct {
	db *mongo.Database
}

func NewFeedbackRepository(db *mongo.Database) domain.FeedbackRepository {
	return &feedbackRepo{db}
}

func (r *feedbackRepo) collection() *mongo.Collection {
	return r.db.Collection("course_feedback")
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *domain.CourseFeedback) error {
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now()
	_, err := r.collection().InsertOne(ctx, feedback)
	return err
}

func (r *feedbackRepo) GetByCourseAndStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*domain.CourseFeedback, error) {
	var feedback domain.CourseFeedback
	err := r.collection().FindOne(ctx, bson.M{"course_id": courseID, "student_id": studentID}).Decode(&feedback)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepo) TopReviews(ctx context.Context, courseID primitive.ObjectID, minRating, limit int) ([]domain.CourseFeedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection().Find(ctx, bson.M{
		"course_id": courseID,
		"rating":    bson.M{"$gte": minRating},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []domain.CourseFeedback
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ========== PLATFORM FEEDBACK REPOSITORY ==========

type platformFeedbackRepo struct {
	db *mongo.Database
}

func NewPlatformFeedbackRepository(db *mongo.Database) domain.PlatformFeedbackRepository {
	return &platformFeedbackRepo{db}
}

func (r *platformFeedbackRepo) collection() *mongo.Collection {
	return r.db.Collection("feedback")
}

func (r *platformFeedbackRepo) Create(ctx context.Context, feedback *domain.PlatformFeedback) error {
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now()
	_, err := r.collection().InsertOne(ctx, feedback)
	return err
}

func (r *platformFeedbackRepo) TopEntries(ctx context.Context, minRating, maxRating, limit int) ([]domain.PlatformFeedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection().Find(ctx, bson.M{
		"rating": bson.M{"$gte": minRating, "$lte": maxRating},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.PlatformFeedback
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ========== COMMUNITY REPOSITORY ==========

type communityRepo struct {
	db *mongo.Database
}

func NewCommunityRepository(db *mongo.Database) domain.CommunityRepository {
	return &communityRepo{db}
}

func (r *communityRepo) collection() *mongo.Collection {
	return r.db.Collection("community_posts")
}

func (r *communityRepo) CreatePost(ctx context.Context, post *domain.CommunityPost) error {
	post.ID = primitive.NewObjectID()
	post.DateCreated = time.Now()
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	_, err := r.collection().InsertOne(ctx, post)
	return err
}

func (r *communityRepo) GetPostByID(ctx context.Context, id primitive.ObjectID) (*domain.CommunityPost, error) {
	var post domain.CommunityPost
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *communityRepo) LatestPosts(ctx context.Context, limit int) ([]domain.CommunityPost, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date_created", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []domain.CommunityPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *communityRepo) AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *communityRepo) SetLikes(ctx context.Context, postID primitive.ObjectID, likes []primitive.ObjectID) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$set": bson.M{"likes": likes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ========== CHALLENGE REPOSITORY ==========

type challengeRepo struct {
	db *mongo.Database
}

func NewChallengeRepository(db *mongo.Database) domain.ChallengeRepository {
	return &challengeRepo{db}
}

func (r *challengeRepo) collection() *mongo.Collection {
	return r.db.Collection("challenges")
}

func (r *challengeRepo) Create(ctx context.Context, challenge *domain.Challenge) error {
	challenge.ID = primitive.NewObjectID()
	challenge.CreatedAt = time.Now()
	_, err := r.collection().InsertOne(ctx, challenge)
	return err
}

func (r *challengeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) GetByCourseID(ctx context.Context, courseID primitive.ObjectID) ([]domain.Challenge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var challenges []domain.Challenge
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *challengeRepo) Update(ctx context.Context, challenge *domain.Challenge) error {
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": challenge.ID}, bson.M{"$set": bson.M{
		"title":        challenge.Title,
		"description":  challenge.Description,
		"starter_code": challenge.StarterCode,
		"test_cases":   challenge.TestCases,
		"difficulty":   challenge.Difficulty,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *challengeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ========== OTP REPOSITORY ==========

type otpRepo struct {
	db *mongo.Database
}

func NewOTPRepository(db *mongo.Database) domain.OTPRepository {
	return &otpRepo{db}
}

func (r *otpRepo) collection() *mongo.Collection {
	return r.db.Collection("otps")
}

func (r *otpRepo) Create(ctx context.Context, otp *domain.OTP) error {
	otp.ID = primitive.NewObjectID()
	otp.CreatedAt = time.Now()
	_, err := r.collection().InsertOne(ctx, otp)
	return err
}

func (r *otpRepo) GetByEmailAndCode(ctx context.Context, email, code string) (*domain.OTP, error) {
	var otp domain.OTP
	err := r.collection().FindOne(ctx, bson.M{"email": email, "code": code}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepo) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"email": email})
	return err
}
