package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/cache"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/media"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/providers/stt"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

// Confidence assigned to segments the engine returned without one.
const defaultConfidence = 0.9

type TranscribeResult struct {
	Text     string
	Segments int
}

type TranscriptionService interface {
	Transcribe(ctx context.Context, id uint) (*TranscribeResult, error)
}

// AudioExtractor pulls the speech track out of a stored video.
type AudioExtractor func(ctx context.Context, videoPath, audioPath string) error

type transcriptionService struct {
	recs postgres.RecordingRepo
	segs postgres.TranscriptRepo
	stt  stt.Provider

	cache cache.Cache
	log   *logrus.Logger

	transcriptsDir string
	language       string
	extract        AudioExtractor
}

func NewTranscriptionService(recs postgres.RecordingRepo, segs postgres.TranscriptRepo, provider stt.Provider, c cache.Cache, log *logrus.Logger, transcriptsDir, language string) TranscriptionService {
	return &transcriptionService{
		recs:           recs,
		segs:           segs,
		stt:            provider,
		cache:          c,
		log:            log,
		transcriptsDir: transcriptsDir,
		language:       language,
		extract:        media.ExtractAudio,
	}
}

// Transcribe extracts the audio track, runs it through the speech engine,
// writes the transcript file, and persists the text plus its timed segments.
// The call is synchronous and blocks for the engine's full duration.
func (s *transcriptionService) Transcribe(ctx context.Context, id uint) (*TranscribeResult, error) {
	const op = "TranscriptionService.Transcribe"

	if s.stt == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "speech engine is not loaded", nil)
	}

	rec, err := fetchRecording(ctx, s.recs, op, id)
	if err != nil {
		return nil, err
	}
	if rec.VideoPath == "" {
		return nil, utils.E(utils.CodeNotFound, op, "video file not found", nil)
	}
	if _, err := os.Stat(rec.VideoPath); err != nil {
		return nil, utils.E(utils.CodeNotFound, op, "video file not found", err)
	}

	audioPath := strings.TrimSuffix(rec.VideoPath, filepath.Ext(rec.VideoPath)) + ".wav"
	if err := s.extract(ctx, rec.VideoPath, audioPath); err != nil {
		return nil, utils.E(utils.CodeMedia, op, "audio extraction failed", err)
	}
	// the wav is an intermediate; remove it whether or not the rest succeeds
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			s.log.WithError(err).WithField("path", audioPath).Warn("failed to remove intermediate audio")
		}
	}()

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read extracted audio", err)
	}

	s.log.WithField("recording_id", id).Info("transcribing")
	result, err := s.stt.Transcribe(ctx, audio, s.language)
	if err != nil {
		return nil, utils.E(utils.CodeUpstream, op, "transcription engine failed", err)
	}

	transcriptPath := filepath.Join(s.transcriptsDir, fmt.Sprintf("transcript_%d.txt", id))
	if err := os.WriteFile(transcriptPath, []byte(result.Text), 0o644); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to write transcript file", err)
	}

	// Segments are inserted one by one; a failure mid-loop leaves the
	// already-inserted prefix in place.
	for _, seg := range result.Segments {
		conf := seg.Confidence
		if conf == 0 {
			conf = defaultConfidence
		}
		err := s.segs.Insert(ctx, &models.TranscriptSegment{
			RecordingID:    id,
			TimestampStart: seg.Start,
			TimestampEnd:   seg.End,
			Text:           seg.Text,
			Confidence:     conf,
		})
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to store transcript segment", err)
		}
	}

	if err := s.recs.SetTranscript(ctx, id, transcriptPath, result.Text); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update recording transcript", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, recordingCacheKey(id))
	}

	return &TranscribeResult{Text: result.Text, Segments: len(result.Segments)}, nil
}
