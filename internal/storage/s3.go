package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ProofStore persists uploaded proof documents in an S3 bucket and hands back
// a public URL to embed in the application record.
type ProofStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	publicURL string
}

func NewProofStore(client *s3.Client, bucket, keyPrefix, publicURL string) *ProofStore {
	return &ProofStore{
		client:    client,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload stores the document under <prefix>/<key> and returns its public URL.
func (s *ProofStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {

	objectKey := path.Join(s.keyPrefix, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload proof document %s: %w", objectKey, err)
	}

	return s.PublicURL(objectKey), nil
}

func (s *ProofStore) Delete(ctx context.Context, objectKey string) error {

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete proof document %s: %w", objectKey, err)
	}

	return nil
}

func (s *ProofStore) PublicURL(objectKey string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, objectKey)
}
