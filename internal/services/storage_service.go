// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/saileshbalu94/ecommerce-ai/internal/config"
	"github.com/saileshbalu94/ecommerce-ai/internal/i18n"
)

const (
	LocalUploadDir   = "uploads"
	localUploadRoute = "/uploads"
	productFolder    = "products"
)

// ImageStore is what the HTTP layer needs from storage.
type ImageStore interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error)
}

type StorageService struct {
	s3Client *s3.S3
	cfg      config.StorageConfig
	localDir string
	logger   *logrus.Logger
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type UploadOptions struct {
	Folder   string
	MaxSize  int64 // in bytes
	IsPublic bool
}

// NewStorageService talks to the S3-compatible endpoint when credentials
// are set and otherwise writes under ./uploads for local development.
func NewStorageService(cfg config.StorageConfig, logger *logrus.Logger) (*StorageService, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &StorageService{cfg: cfg, localDir: LocalUploadDir, logger: logger}
	if cfg.AccessKeyID == "" {
		return s, nil
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}
	s.s3Client = s3.New(sess)
	return s, nil
}

func (s *StorageService) Remote() bool {
	return s.s3Client != nil
}

// UploadImage checks the file signature and stores a product image publicly.
func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*UploadResult, error) {
	mimeType, err := ValidateImage(file)
	if err != nil {
		return nil, err
	}

	return s.UploadFile(ctx, file, header.Filename, mimeType, UploadOptions{
		Folder:   productFolder,
		MaxSize:  s.cfg.MaxUploadBytes(),
		IsPublic: true,
	})
}

func (s *StorageService) UploadFile(ctx context.Context, r io.Reader, originalName, contentType string, options UploadOptions) (*UploadResult, error) {
	limit := options.MaxSize
	var body io.Reader = r
	if limit > 0 {
		body = io.LimitReader(r, limit+1)
	}

	fileBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if limit > 0 && int64(len(fileBytes)) > limit {
		return nil, invalid("productImage", i18n.KeyUploadInvalid,
			fmt.Sprintf("file exceeds maximum allowed size of %d bytes", limit))
	}

	key := generateFileName(originalName, options.Folder, time.Now())
	if s.s3Client != nil {
		return s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}
	if isPublic {
		params.ACL = aws.String(s3.ObjectCannedACLPublicRead)
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to storage: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"key": key, "size": len(fileBytes)}).Info("Image uploaded")
	return &UploadResult{
		URL:      s.publicURL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.localDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}

	return &UploadResult{
		URL:      localUploadRoute + "/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		err := os.Remove(filepath.Join(s.localDir, filepath.FromSlash(key)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete local file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}
	return nil
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", errors.New("storage client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

// EnsureBucket creates the public image bucket if it does not exist yet.
// It reports whether a bucket was created.
func (s *StorageService) EnsureBucket(ctx context.Context) (bool, error) {
	if s.s3Client == nil {
		return false, os.MkdirAll(s.localDir, 0o755)
	}

	out, err := s.s3Client.ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return false, fmt.Errorf("failed to list buckets: %w", err)
	}
	for _, b := range out.Buckets {
		if aws.StringValue(b.Name) == s.cfg.Bucket {
			return false, nil
		}
	}

	_, err = s.s3Client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.cfg.Bucket),
		ACL:    aws.String(s3.BucketCannedACLPublicRead),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou || aerr.Code() == s3.ErrCodeBucketAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create bucket %s: %w", s.cfg.Bucket, err)
	}

	s.logger.WithField("bucket", s.cfg.Bucket).Info("Storage bucket created")
	return true, nil
}

func (s *StorageService) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.PublicURL, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
}

func generateFileName(originalName, folder string, now time.Time) string {
	id := uuid.New()
	ext := strings.ToLower(filepath.Ext(originalName))

	filename := fmt.Sprintf("%s_%s%s", now.Format("20060102"), id.String()[:8], ext)
	if folder != "" {
		return folder + "/" + filename
	}
	return filename
}

// ValidateImage sniffs the file signature, rewinds the file and returns the
// detected MIME type.
func ValidateImage(file io.ReadSeeker) (string, error) {
	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", invalid("productImage", i18n.KeyUploadInvalid, "failed to read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind file: %w", err)
	}

	mimeType := imageMIMEType(buffer[:n])
	if mimeType == "" {
		return "", invalid("productImage", i18n.KeyUploadInvalid, "only JPEG, PNG, GIF and WebP images are allowed")
	}
	return mimeType, nil
}

func imageMIMEType(buffer []byte) string {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return "image/jpeg"
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "image/png"
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return "image/gif"
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return "image/webp"
	}
	return ""
}
