package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/fng3r/cis-haxball/models"
)

// RatingSnapshotKey - ключ JSON-копии версии рейтинга в бакете.
func RatingSnapshotKey(number int) string {
	return fmt.Sprintf("ratings/v%04d.json", number)
}

// RatingExporter выгружает опубликованные версии рейтинга в объектное хранилище.
type RatingExporter struct {
	uploader FileUploader
}

func NewRatingExporter(uploader FileUploader) *RatingExporter {
	return &RatingExporter{uploader: uploader}
}

func (e *RatingExporter) Export(ctx context.Context, version *models.RatingVersion) (*UploadResult, error) {
	data, err := json.Marshal(version)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rating version %d: %w", version.Number, err)
	}
	return e.uploader.Upload(ctx, RatingSnapshotKey(version.Number), ContentTypeJSON, bytes.NewReader(data))
}
