package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"codelearn-backend/internal/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxImageSize caps profile picture and thumbnail uploads at 8MB.
const MaxImageSize = 8 * 1024 * 1024

// FileInfo holds metadata for an uploaded file.
type FileInfo struct {
	ID          string       `json:"id" bson:"_id"`
	Filename    string       `json:"filename" bson:"filename"`
	ContentType string       `json:"content_type" bson:"contentType"`
	Size        int64        `json:"size" bson:"length"`
	UploadDate  time.Time    `json:"upload_date" bson:"uploadDate"`
	Metadata    FileMetadata `json:"metadata" bson:"metadata"`
}

// FileMetadata records who uploaded the file and what it is used for.
type FileMetadata struct {
	OriginalName string             `json:"original_name" bson:"original_name"`
	UploadedBy   primitive.ObjectID `json:"uploaded_by" bson:"uploaded_by"`
	Purpose      string             `json:"purpose" bson:"purpose"` // profile_pic, thumbnail
}

// GridFSRepository stores profile pictures and course thumbnails.
type GridFSRepository interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, metadata FileMetadata) (*FileInfo, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error)
	Delete(ctx context.Context, fileID string) error
	GetFileInfo(ctx context.Context, fileID string) (*FileInfo, error)
}

type gridFSRepo struct {
	db     *mongo.Database
	bucket *gridfs.Bucket
}

func NewGridFSRepository(db *mongo.Database) (GridFSRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("uploads"))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}
	return &gridFSRepo{db: db, bucket: bucket}, nil
}

func (r *gridFSRepo) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, metadata FileMetadata) (*FileInfo, error) {
	if header.Size > MaxImageSize {
		return nil, fmt.Errorf("%w: file too large, maximum is %dMB", domain.ErrValidation, MaxImageSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detectContentType(header.Filename)
	}

	if !isAllowedImageType(contentType, header.Filename) {
		return nil, fmt.Errorf("%w: only JPEG, PNG, GIF and WebP images are allowed", domain.ErrValidation)
	}

	ext := filepath.Ext(header.Filename)
	uniqueFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)

	metadata.OriginalName = header.Filename

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"original_name": metadata.OriginalName,
		"uploaded_by":   metadata.UploadedBy,
		"purpose":       metadata.Purpose,
		"content_type":  contentType,
	})

	objectID, err := r.bucket.UploadFromStream(uniqueFilename, file, uploadOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return &FileInfo{
		ID:          objectID.Hex(),
		Filename:    uniqueFilename,
		ContentType: contentType,
		Size:        header.Size,
		UploadDate:  time.Now(),
		Metadata:    metadata,
	}, nil
}

func (r *gridFSRepo) Download(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid file id", domain.ErrValidation)
	}

	fileInfo, err := r.GetFileInfo(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := r.bucket.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}

	return stream, fileInfo, nil
}

func (r *gridFSRepo) Delete(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("%w: invalid file id", domain.ErrValidation)
	}

	if err := r.bucket.Delete(objectID); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (r *gridFSRepo) GetFileInfo(ctx context.Context, fileID string) (*FileInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid file id", domain.ErrValidation)
	}

	collection := r.db.Collection("uploads.files")

	var result struct {
		ID         primitive.ObjectID `bson:"_id"`
		Filename   string             `bson:"filename"`
		Length     int64              `bson:"length"`
		UploadDate time.Time          `bson:"uploadDate"`
		Metadata   bson.M             `bson:"metadata"`
	}

	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metadata := FileMetadata{}
	contentType := ""
	if result.Metadata != nil {
		if v, ok := result.Metadata["original_name"].(string); ok {
			metadata.OriginalName = v
		}
		if v, ok := result.Metadata["uploaded_by"].(primitive.ObjectID); ok {
			metadata.UploadedBy = v
		}
		if v, ok := result.Metadata["purpose"].(string); ok {
			metadata.Purpose = v
		}
		if v, ok := result.Metadata["content_type"].(string); ok {
			contentType = v
		}
	}
	if contentType == "" {
		contentType = detectContentType(result.Filename)
	}

	return &FileInfo{
		ID:          result.ID.Hex(),
		Filename:    result.Filename,
		ContentType: contentType,
		Size:        result.Length,
		UploadDate:  result.UploadDate,
		Metadata:    metadata,
	}, nil
}

func detectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func isAllowedImageType(contentType, filename string) bool {
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if allowedTypes[contentType] {
		return true
	}

	ext := strings.ToLower(filepath.Ext(filename))
	allowedExts := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
		".webp": true,
	}
	return allowedExts[ext]
}
