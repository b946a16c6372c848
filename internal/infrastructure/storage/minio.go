package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// AudioStore archives uploaded meeting recordings in object storage
type AudioStore struct {
	client *minio.Client
	bucket string
}

// NewAudioStore creates the MinIO-backed audio store and ensures the bucket
// exists
func NewAudioStore(cfg config.StorageConfig) (*AudioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &AudioStore{client: client, bucket: cfg.BucketName}
	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return store, nil
}

func (s *AudioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadAudio stores a recording and returns its object key
func (s *AudioStore) UploadAudio(ctx context.Context, meetingID string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("audio/%s/%d", meetingID, time.Now().UnixNano())
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return objectKey, nil
}

// ArchiveTranscript stores a copy of submitted transcript text and returns
// its object key. The archive is write-only from the API's point of view;
// the database row stays the source of truth.
func (s *AudioStore) ArchiveTranscript(ctx context.Context, meetingID, text string) (string, error) {
	objectKey := fmt.Sprintf("transcripts/%s/%d.txt", meetingID, time.Now().UnixNano())
	reader := strings.NewReader(text)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, int64(len(text)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive transcript: %w", err)
	}
	return objectKey, nil
}

// GetAudio opens the stored recording for reading
func (s *AudioStore) GetAudio(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get audio object: %w", err)
	}
	return obj, nil
}

// DeleteAudio removes a stored recording
func (s *AudioStore) DeleteAudio(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete audio object: %w", err)
	}
	return nil
}

// PresignedURL generates a temporary download URL for a stored recording
func (s *AudioStore) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
