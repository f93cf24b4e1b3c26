package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
	"gorm.io/gorm"
)

// ListFilter holds the optional, ANDed predicates for listing recordings.
type ListFilter struct {
	FacultyID string // exact match
	Subject   string // case-insensitive substring
	Date      string // exact match, YYYY-MM-DD
}

const searchLimit = 20

type RecordingRepo interface {
	Create(ctx context.Context, rec *models.Recording) error
	GetByID(ctx context.Context, id uint) (*models.Recording, error)
	List(ctx context.Context, f ListFilter) ([]models.Recording, error)
	Search(ctx context.Context, query string) ([]models.Recording, error)
	Delete(ctx context.Context, id uint) error

	SetTerminal(ctx context.Context, id uint, status, videoPath string, duration int, endTime time.Time) error
	SetTranscript(ctx context.Context, id uint, transcriptPath, transcriptText string) error
	SetSummary(ctx context.Context, id uint, summary string, keyPoints []string) error
}

type recordingRepo struct {
	db *gorm.DB
}

func NewRecordingRepo(db *gorm.DB) RecordingRepo {
	return &recordingRepo{db: db}
}

func (r *recordingRepo) Create(ctx context.Context, rec *models.Recording) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordingRepo) GetByID(ctx context.Context, id uint) (*models.Recording, error) {
	var row models.Recording
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *recordingRepo) List(ctx context.Context, f ListFilter) ([]models.Recording, error) {
	q := r.db.WithContext(ctx).Model(&models.Recording{})

	if f.FacultyID != "" {
		q = q.Where("faculty_id = ?", f.FacultyID)
	}
	if f.Subject != "" {
		q = q.Where("LOWER(subject) LIKE LOWER(?)", "%"+f.Subject+"%")
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	var rows []models.Recording
	err := q.Order("date DESC, start_time DESC").Find(&rows).Error
	return rows, err
}

func (r *recordingRepo) Search(ctx context.Context, query string) ([]models.Recording, error) {
	pattern := "%" + query + "%"

	var rows []models.Recording
	err := r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Distinct("recordings.*").
		Joins("LEFT JOIN transcripts ON recordings.id = transcripts.recording_id").
		Where(r.db.
			Where("LOWER(recordings.subject) LIKE LOWER(?)", pattern).
			Or("LOWER(recordings.summary) LIKE LOWER(?)", pattern).
			Or("LOWER(recordings.transcript_text) LIKE LOWER(?)", pattern).
			Or("LOWER(transcripts.text) LIKE LOWER(?)", pattern)).
		Order("recordings.date DESC").
		Limit(searchLimit).
		Find(&rows).Error
	return rows, err
}

// Delete removes the recording row and all of its transcript segments in one
// transaction. File cleanup is the caller's job.
func (r *recordingRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recording_id = ?", id).Delete(&models.TranscriptSegment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Recording{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
}

// SetTerminal writes the capture loop's terminal state: completed or failed,
// plus the final video path, duration, and end time.
func (r *recordingRepo) SetTerminal(ctx context.Context, id uint, status, videoPath string, duration int, endTime time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"video_path": videoPath,
			"duration":   duration,
			"end_time":   endTime,
		}).Error
}

func (r *recordingRepo) SetTranscript(ctx context.Context, id uint, transcriptPath, transcriptText string) error {
	return r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"transcript_path": transcriptPath,
			"transcript_text": transcriptText,
		}).Error
}

func (r *recordingRepo) SetSummary(ctx context.Context, id uint, summary string, keyPoints []string) error {
	return r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"summary":    summary,
			"key_points": pq.StringArray(keyPoints),
		}).Error
}
