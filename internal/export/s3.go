package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"docintel/internal/config"
	"docintel/internal/port"
)

// s3Sink uploads report artifacts to an S3 bucket under a key prefix.
type s3Sink struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewS3Sink creates an object-storage-backed report sink.
func NewS3Sink(storage port.ObjectStorage, cfg *config.S3Config) port.ReportSink {
	return &s3Sink{
		storage: storage,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
	}
}

func (s *s3Sink) Write(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := path.Join(s.prefix, name)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", name, err)
	}
	if out.Location != "" {
		return out.Location, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
