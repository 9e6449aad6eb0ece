package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mateng0/shopkeeper-station/structs"
)

var (
	s3Client  *s3.Client
	s3Once    sync.Once
	s3InitErr error
)

// StorageService uploads and deletes product photos in an S3 bucket.
type StorageService struct {
	logger *gecho.Logger
	config *structs.Config
	client *s3.Client
}

func NewStorageService(logger *gecho.Logger, cfg *structs.Config) (*StorageService, error) {
	client, err := getS3Client(cfg)
	if err != nil {
		logger.Error("Failed to initialize S3 client", gecho.Field("error", err))
		return nil, err
	}
	return &StorageService{
		logger: logger,
		config: cfg,
		client: client,
	}, nil
}

func getS3Client(cfg *structs.Config) (*s3.Client, error) {
	s3Once.Do(func() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.Storage.Region),
		)
		if err != nil {
			s3InitErr = fmt.Errorf("failed to load AWS configuration: %w", err)
			return
		}
		s3Client = s3.NewFromConfig(awsCfg)
	})
	return s3Client, s3InitErr
}

// PhotoKey builds the object key for a product photo. The extension is taken
// from the uploaded filename; unknown extensions fall back to .bin.
func PhotoKey(productID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".bin"
	}
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}

// PublicURL returns the public URL for a stored object key.
func (ss *StorageService) PublicURL(key string) string {
	base := strings.TrimSuffix(ss.config.Storage.PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s", base, key)
}

// UploadPhoto stores a photo under the given key and returns its public URL.
func (ss *StorageService) UploadPhoto(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ss.config.Storage.UploadTimeout)
	defer cancel()

	_, err := ss.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.config.Storage.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		ss.logger.Error("Failed to upload photo",
			gecho.Field("bucket", ss.config.Storage.Bucket),
			gecho.Field("key", key),
			gecho.Field("error", err),
		)
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	ss.logger.Debug("Photo uploaded",
		gecho.Field("bucket", ss.config.Storage.Bucket),
		gecho.Field("key", key),
	)

	return ss.PublicURL(key), nil
}

// DeletePhoto removes a stored object. Missing objects are not an error.
func (ss *StorageService) DeletePhoto(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, ss.config.Storage.UploadTimeout)
	defer cancel()

	_, err := ss.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(ss.config.Storage.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		ss.logger.Error("Failed to delete photo",
			gecho.Field("bucket", ss.config.Storage.Bucket),
			gecho.Field("key", key),
			gecho.Field("error", err),
		)
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
