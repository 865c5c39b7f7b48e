package backend

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultMaxUploadSize = 10 << 20 // 10MB

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadConfig struct {
	// Bucket empty means object storage is off and every upload goes
	// to the local directory.
	Bucket       string
	Region       string
	LocalDir     string
	PublicPrefix string
	MaxSizeBytes int64
}

// Uploader stores admin uploads in S3 when a bucket is configured,
// falling back to local disk. The S3 client is constructed once at
// startup; a nil svc is the "feature disabled" state.
type Uploader struct {
	svc          *s3.S3
	bucket       string
	region       string
	localDir     string
	publicPrefix string
	maxSize      int64
}

func NewUploader(cfg UploadConfig) (*Uploader, error) {
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = defaultMaxUploadSize
	}
	if cfg.LocalDir == "" {
		cfg.LocalDir = "static/uploads"
	}
	if cfg.PublicPrefix == "" {
		cfg.PublicPrefix = "/static/uploads"
	}

	u := &Uploader{
		bucket:       cfg.Bucket,
		region:       cfg.Region,
		localDir:     cfg.LocalDir,
		publicPrefix: cfg.PublicPrefix,
		maxSize:      cfg.MaxSizeBytes,
	}

	if cfg.Bucket != "" {
		s, err := session.NewSession()
		if err != nil {
			return nil, err
		}
		u.svc = s3.New(s, &aws.Config{
			Region:     aws.String(cfg.Region),
			MaxRetries: aws.Int(3),
		})
		logrus.Infof("object storage enabled, bucket: %s", cfg.Bucket)
	} else {
		logrus.Info("object storage not configured, uploads go to local disk")
	}

	return u, nil
}

func (u *Uploader) Upload(now time.Time, data []byte, filename, contentType string) (model.UploadResponse, error) {
	if int64(len(data)) > u.maxSize {
		return model.UploadResponse{}, model.NewValidation("file", "file too large, limit is %d bytes", u.maxSize)
	}

	ext := strings.ToLower(path.Ext(filename))
	if !allowedUploadExtensions[ext] {
		return model.UploadResponse{}, model.NewValidation("file", "file type %q not allowed", ext)
	}

	datePath := now.Format("2006/01")
	generated := uuid.NewString() + ext

	if u.svc != nil {
		url, err := u.uploadToS3(path.Join("uploads", datePath, generated), data, contentType)
		if err == nil {
			return model.UploadResponse{
				URL:              url,
				Filename:         generated,
				OriginalFilename: filename,
				Storage:          "s3",
			}, nil
		}
		logrus.WithError(err).Warn("s3 upload failed, falling back to local storage")
	}

	localDir := filepath.Join(u.localDir, filepath.FromSlash(datePath))
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return model.UploadResponse{}, err
	}
	if err := os.WriteFile(filepath.Join(localDir, generated), data, 0o644); err != nil {
		return model.UploadResponse{}, err
	}

	return model.UploadResponse{
		URL:              u.publicPrefix + "/" + datePath + "/" + generated,
		Filename:         generated,
		OriginalFilename: filename,
		Storage:          "local",
	}, nil
}

func (u *Uploader) uploadToS3(key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %v to s3 with error %v", key, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}

func (b *backend) Upload(data []byte, filename, contentType string) (model.UploadResponse, error) {
	return b.uploader.Upload(b.clock.Now(), data, filename, contentType)
}
