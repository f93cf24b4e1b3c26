package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/cache"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/storage"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

const (
	recordingCacheTTL = 5 * time.Minute

	// Search entries are keyed per query string, so deletes and pipeline
	// writes cannot target them for invalidation. The short TTL is the
	// staleness bound: a /search response may include a recording deleted
	// or updated within the last minute.
	searchCacheTTL = time.Minute
)

func recordingCacheKey(id uint) string { return fmt.Sprintf("recording:%d", id) }

// RecordingDetail is a recording joined with its transcript segments,
// ordered by start time.
type RecordingDetail struct {
	models.Recording
	TranscriptSegments []models.TranscriptSegment `json:"transcript_segments"`
}

type RecordingService interface {
	Get(ctx context.Context, id uint) (*RecordingDetail, error)
	List(ctx context.Context, f postgres.ListFilter) ([]models.Recording, error)
	Search(ctx context.Context, query string) ([]models.Recording, error)
	Delete(ctx context.Context, id uint) error
	VideoPath(ctx context.Context, id uint) (string, error)
	Archive(ctx context.Context, id uint) (string, error)
}

type recordingService struct {
	recs     postgres.RecordingRepo
	segs     postgres.TranscriptRepo
	cache    cache.Cache // nil disables caching
	uploader storage.Uploader
	log      *logrus.Logger
}

func NewRecordingService(recs postgres.RecordingRepo, segs postgres.TranscriptRepo, c cache.Cache, up storage.Uploader, log *logrus.Logger) RecordingService {
	return &recordingService{recs: recs, segs: segs, cache: c, uploader: up, log: log}
}

func (s *recordingService) Get(ctx context.Context, id uint) (*RecordingDetail, error) {
	const op = "RecordingService.Get"

	if s.cache != nil {
		var cached RecordingDetail
		if hit, _ := s.cache.GetJSON(ctx, recordingCacheKey(id), &cached); hit {
			return &cached, nil
		}
	}

	rec, err := s.getRecording(ctx, op, id)
	if err != nil {
		return nil, err
	}

	segs, err := s.segs.ByRecording(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load transcript segments", err)
	}

	out := &RecordingDetail{Recording: *rec, TranscriptSegments: segs}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, recordingCacheKey(id), out, recordingCacheTTL)
	}
	return out, nil
}

func (s *recordingService) List(ctx context.Context, f postgres.ListFilter) ([]models.Recording, error) {
	const op = "RecordingService.List"

	rows, err := s.recs.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list recordings", err)
	}
	return rows, nil
}

func (s *recordingService) Search(ctx context.Context, query string) ([]models.Recording, error) {
	const op = "RecordingService.Search"

	if query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}

	key := "search:" + query
	if s.cache != nil {
		var cached []models.Recording
		if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	rows, err := s.recs.Search(ctx, query)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "search failed", err)
	}
	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, rows, searchCacheTTL)
	}
	return rows, nil
}

// Delete removes the row, its segments, and the on-disk video and transcript
// files. Missing files are not an error.
func (s *recordingService) Delete(ctx context.Context, id uint) error {
	const op = "RecordingService.Delete"

	rec, err := s.getRecording(ctx, op, id)
	if err != nil {
		return err
	}

	for _, p := range []string{rec.VideoPath, rec.TranscriptPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", p).Warn("failed to remove recording file")
		}
	}

	if err := s.recs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "recording not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete recording", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, recordingCacheKey(id))
	}
	return nil
}

// VideoPath resolves the on-disk video for streaming. The completed status
// only guarantees the file existed when the loop finished, so existence is
// re-checked here.
func (s *recordingService) VideoPath(ctx context.Context, id uint) (string, error) {
	const op = "RecordingService.VideoPath"

	rec, err := s.getRecording(ctx, op, id)
	if err != nil {
		return "", err
	}
	if rec.VideoPath == "" {
		return "", utils.E(utils.CodeNotFound, op, "video not found", nil)
	}
	if _, err := os.Stat(rec.VideoPath); err != nil {
		return "", utils.E(utils.CodeNotFound, op, "video file not found", err)
	}
	return rec.VideoPath, nil
}

// Archive uploads a completed recording's video to object storage and
// returns the public URL.
func (s *recordingService) Archive(ctx context.Context, id uint) (string, error) {
	const op = "RecordingService.Archive"

	if s.uploader == nil {
		return "", utils.E(utils.CodeUnavailable, op, "archive storage is not configured", nil)
	}

	rec, err := s.getRecording(ctx, op, id)
	if err != nil {
		return "", err
	}
	if rec.Status != models.StatusCompleted || rec.VideoPath == "" {
		return "", utils.E(utils.CodeFailedPrecondition, op, "recording is not completed", nil)
	}

	f, err := os.Open(rec.VideoPath)
	if err != nil {
		return "", utils.E(utils.CodeNotFound, op, "video file not found", err)
	}
	defer f.Close()

	object := fmt.Sprintf("recordings/%s_%s", uuid.NewString(), filepath.Base(rec.VideoPath))
	url, err := s.uploader.Upload(ctx, object, "video/mp4", f)
	if err != nil {
		return "", utils.E(utils.CodeUpstream, op, "archive upload failed", err)
	}
	return url, nil
}

func (s *recordingService) getRecording(ctx context.Context, op string, id uint) (*models.Recording, error) {
	return fetchRecording(ctx, s.recs, op, id)
}

// fetchRecording maps repo lookup failures onto the error taxonomy; shared
// by every orchestrator that starts from a recording id.
func fetchRecording(ctx context.Context, recs postgres.RecordingRepo, op string, id uint) (*models.Recording, error) {
	rec, err := recs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "recording not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get recording", err)
	}
	return rec, nil
}
