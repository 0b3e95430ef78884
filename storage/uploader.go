// Package storage хранит копии опубликованных данных лиги в объектном хранилище.
package storage

import (
	"context"
	"io"
)

const ContentTypeJSON = "application/json"

// UploadResult - где оказался объект после загрузки.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"` // Публичный URL; пустой, если бакет не раздаётся наружу
	ETag     string `json:"etag,omitempty"`
}

// FileUploader - S3-совместимое хранилище (Cloudflare R2 в проде, память в тестах).
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}
