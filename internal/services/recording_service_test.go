package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

func TestDeleteRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "1.mp4")
	transcript := filepath.Join(dir, "transcript_1.txt")
	require.NoError(t, os.WriteFile(video, []byte("mp4"), 0o644))
	require.NoError(t, os.WriteFile(transcript, []byte("text"), 0o644))

	recs := &stubRecordingRepo{rec: &models.Recording{ID: 1, VideoPath: video, TranscriptPath: transcript}}
	svc := NewRecordingService(recs, newStubSegmentRepo(), nil, nil, testLogger(t))

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.NoFileExists(t, video)
	assert.NoFileExists(t, transcript)
	assert.Equal(t, []uint{1}, recs.deleted)
}

func TestDeleteToleratesMissingFiles(t *testing.T) {
	recs := &stubRecordingRepo{rec: &models.Recording{ID: 1, VideoPath: "recordings/gone.mp4"}}
	svc := NewRecordingService(recs, newStubSegmentRepo(), nil, nil, testLogger(t))

	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestDeleteNotFound(t *testing.T) {
	recs := &stubRecordingRepo{getErr: utils.ErrNotFound}
	svc := NewRecordingService(recs, newStubSegmentRepo(), nil, nil, testLogger(t))

	err := svc.Delete(context.Background(), 42)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestVideoPathChecksFileExists(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "1.mp4")
	require.NoError(t, os.WriteFile(video, []byte("mp4"), 0o644))

	recs := &stubRecordingRepo{rec: &models.Recording{ID: 1, VideoPath: video}}
	svc := NewRecordingService(recs, newStubSegmentRepo(), nil, nil, testLogger(t))

	got, err := svc.VideoPath(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, video, got)

	require.NoError(t, os.Remove(video))
	_, err = svc.VideoPath(context.Background(), 1)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewRecordingService(&stubRecordingRepo{}, newStubSegmentRepo(), nil, nil, testLogger(t))

	_, err := svc.Search(context.Background(), "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestGetJoinsSegments(t *testing.T) {
	recs := &stubRecordingRepo{rec: &models.Recording{ID: 1, Subject: "Algebra"}}
	segs := newStubSegmentRepo()
	segs.inserted = []models.TranscriptSegment{
		{RecordingID: 1, TimestampStart: 0, TimestampEnd: 2, Text: "hello", Confidence: 0.9},
	}
	svc := NewRecordingService(recs, segs, nil, nil, testLogger(t))

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", detail.Subject)
	require.Len(t, detail.TranscriptSegments, 1)
	assert.Equal(t, "hello", detail.TranscriptSegments[0].Text)
}

func TestArchiveRequiresConfiguredStorage(t *testing.T) {
	recs := &stubRecordingRepo{rec: &models.Recording{ID: 1, Status: models.StatusCompleted}}
	svc := NewRecordingService(recs, newStubSegmentRepo(), nil, nil, testLogger(t))

	_, err := svc.Archive(context.Background(), 1)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}
