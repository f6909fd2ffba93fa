package services

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DocumentStore serves the document templates users are asked to review and sign
type DocumentStore interface {
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	Ping(ctx context.Context) error
}

type MinioStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

type minioDocumentStore struct {
	client *minio.Client
	bucket string
}

func NewMinioDocumentStore(cfg MinioStoreConfig) (DocumentStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &minioDocumentStore{client: client, bucket: cfg.Bucket}, nil
}

func (m *minioDocumentStore) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", objectName, err)
	}
	return url.String(), nil
}

// Ping checks that the documents bucket is reachable and exists
func (m *minioDocumentStore) Ping(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}
