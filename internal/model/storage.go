package model

import (
	"context"
	"io"
	"time"
)

// Storage is the blob storage pass-through for file payloads.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PresignedGetURL(ctx context.Context, key, filename string, expiry time.Duration) (string, error)
}
