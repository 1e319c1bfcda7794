package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/meetingintel-team/meeting-intel/pkg/config"
)

// MinIOClient archives raw webhook payloads and transcripts to object storage
type MinIOClient struct {
	client *minio.Client
	bucket string
}

// NewMinIOClient creates a new MinIO client and ensures the bucket exists
func NewMinIOClient(cfg *config.StorageConfig) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	ctx := context.Background()
	if err := client.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return client, nil
}

// ensureBucket creates the archive bucket if it does not exist
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadFile uploads a file to MinIO
func (m *MinIOClient) UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	return nil
}

// ArchiveWebhookPayload stores the raw webhook body for audit and replay
func (m *MinIOClient) ArchiveWebhookPayload(ctx context.Context, firefliesID string, payload []byte) error {
	objectName := fmt.Sprintf("webhooks/%s/%d.json", firefliesID, time.Now().UnixNano())
	reader := bytes.NewReader(payload)
	return m.UploadFile(ctx, objectName, reader, int64(len(payload)), "application/json")
}

// ArchiveTranscript stores a fetched transcript alongside the meeting record
func (m *MinIOClient) ArchiveTranscript(ctx context.Context, firefliesID string, transcript string) error {
	objectName := fmt.Sprintf("transcripts/%s.txt", firefliesID)
	reader := bytes.NewReader([]byte(transcript))
	return m.UploadFile(ctx, objectName, reader, int64(len(transcript)), "text/plain")
}

// GetTranscriptURL gets a presigned URL for downloading an archived transcript
func (m *MinIOClient) GetTranscriptURL(ctx context.Context, firefliesID string, expiry time.Duration) (string, error) {
	objectName := fmt.Sprintf("transcripts/%s.txt", firefliesID)
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// ListArchived lists archived objects under a prefix
func (m *MinIOClient) ListArchived(ctx context.Context, prefix string) ([]string, error) {
	var files []string
	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		files = append(files, object.Key)
	}
	return files, nil
}
