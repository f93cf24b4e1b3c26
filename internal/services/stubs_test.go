package services

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/providers/stt"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
)

func testLogger(t *testing.T) *logrus.Logger {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type stubRecordingRepo struct {
	postgres.RecordingRepo

	rec    *models.Recording
	getErr error

	deleted       []uint
	deleteErr     error
	transcriptSet bool
	summarySet    bool
	summary       string
	keyPoints     []string
}

func (r *stubRecordingRepo) GetByID(ctx context.Context, id uint) (*models.Recording, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.rec, nil
}

func (r *stubRecordingRepo) Delete(ctx context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRecordingRepo) SetTranscript(ctx context.Context, id uint, transcriptPath, transcriptText string) error {
	r.transcriptSet = true
	return nil
}

func (r *stubRecordingRepo) SetSummary(ctx context.Context, id uint, summary string, keyPoints []string) error {
	r.summarySet = true
	r.summary = summary
	r.keyPoints = keyPoints
	return nil
}

type stubSegmentRepo struct {
	postgres.TranscriptRepo

	inserted  []models.TranscriptSegment
	failAfter int // fail the insert once this many have succeeded; <0 never fails
}

func newStubSegmentRepo() *stubSegmentRepo { return &stubSegmentRepo{failAfter: -1} }

func (r *stubSegmentRepo) Insert(ctx context.Context, seg *models.TranscriptSegment) error {
	if r.failAfter >= 0 && len(r.inserted) >= r.failAfter {
		return context.DeadlineExceeded
	}
	r.inserted = append(r.inserted, *seg)
	return nil
}

func (r *stubSegmentRepo) ByRecording(ctx context.Context, recordingID uint) ([]models.TranscriptSegment, error) {
	return r.inserted, nil
}

type stubSTT struct {
	result *stt.Result
	err    error
}

func (s *stubSTT) Transcribe(ctx context.Context, audio []byte, language string) (*stt.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubSTT) Close() error { return nil }

type stubLLM struct {
	chunks []string
	err    error
	prompt string
}

func (s *stubLLM) StreamAnswer(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	s.prompt = prompt

	out := make(chan string, len(s.chunks))
	errs := make(chan error, 1)
	for _, c := range s.chunks {
		out <- c
	}
	if s.err != nil {
		errs <- s.err
	}
	close(out)
	close(errs)
	return out, errs
}

func (s *stubLLM) Close() error { return nil }
