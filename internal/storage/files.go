package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxDocumentSize is the default per-file upload limit, used when the
// platform settings do not configure one.
const MaxDocumentSize = 10 << 20 // 10MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrFileTypeBlocked = errors.New("file type not allowed")
)

// ValidateDocument enforces the upload allow-list and size cap. A limit of
// zero or less falls back to MaxDocumentSize.
func ValidateDocument(fileName string, size, limit int64) error {
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	if size > limit {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return ErrFileTypeBlocked
	}
	return nil
}

// FileStore abstracts where session documents live.
type FileStore interface {
	Save(ctx context.Context, objectName string, file io.Reader, size int64) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// S3Store keeps documents in an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// S3Options configures the bucket connection. Endpoint is optional and
// supports S3-compatible providers.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Store builds an S3-backed FileStore.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})
	return &S3Store{client: client, bucket: opts.Bucket}, nil
}

// Save uploads the object and returns its storage URL.
func (s *S3Store) Save(ctx context.Context, objectName string, file io.Reader, size int64) (string, error) {
	contentType := mime.TypeByExtension(path.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectName),
		Body:          file,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %w", err)
	}
	return "s3://" + s.bucket + "/" + objectName, nil
}

// Delete removes the object from the bucket.
func (s *S3Store) Delete(ctx context.Context, objectName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

// LocalStore keeps documents on local disk, used when no bucket is
// configured.
type LocalStore struct {
	dir string
}

// NewLocalStore builds a disk-backed FileStore rooted at dir.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the file under the store directory and returns its path.
func (l *LocalStore) Save(ctx context.Context, objectName string, file io.Reader, size int64) (string, error) {
	dest := filepath.Join(l.dir, filepath.Base(objectName))
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// Delete removes the file from disk. A missing file is not an error.
func (l *LocalStore) Delete(ctx context.Context, objectName string) error {
	err := os.Remove(filepath.Join(l.dir, filepath.Base(objectName)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
