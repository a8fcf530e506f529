package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"interntrack/intern-track/internal/config"
)

func TestS3Mirror_PresignedURL(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	mirror, err := NewS3Mirror(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "documents",
	})
	if err != nil {
		t.Fatalf("NewS3Mirror: %v", err)
	}

	url, err := mirror.GeneratePresignedDownloadURL(context.Background(), "2021/CS2021001/CS2021001-Document.pdf", 5*time.Minute)
	if err != nil {
		t.Fatalf("GeneratePresignedDownloadURL: %v", err)
	}
	for _, want := range []string{"localhost:9000", "documents", "CS2021001-Document.pdf"} {
		if !strings.Contains(url, want) {
			t.Errorf("url %q missing %q", url, want)
		}
	}
	if !strings.Contains(url, "X-Amz-Signature=") || !strings.Contains(url, "X-Amz-Expires=300") {
		t.Errorf("url is not presigned for 300s: %q", url)
	}
}
