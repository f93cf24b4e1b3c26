package postgres

import (
	"context"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"gorm.io/gorm"
)

type TranscriptRepo interface {
	Insert(ctx context.Context, seg *models.TranscriptSegment) error
	ByRecording(ctx context.Context, recordingID uint) ([]models.TranscriptSegment, error)
}

type transcriptRepo struct {
	db *gorm.DB
}

func NewTranscriptRepo(db *gorm.DB) TranscriptRepo {
	return &transcriptRepo{db: db}
}

func (r *transcriptRepo) Insert(ctx context.Context, seg *models.TranscriptSegment) error {
	return r.db.WithContext(ctx).Create(seg).Error
}

func (r *transcriptRepo) ByRecording(ctx context.Context, recordingID uint) ([]models.TranscriptSegment, error) {
	var rows []models.TranscriptSegment
	err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		Order("timestamp_start ASC").
		Find(&rows).Error
	return rows, err
}
