package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a pooled second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Recording{}, &models.TranscriptSegment{}))
	return db
}

func seedRecording(t *testing.T, repo RecordingRepo, facultyID, subject, date string) *models.Recording {
	t.Helper()

	rec := &models.Recording{
		FacultyID:   facultyID,
		FacultyName: "Dr. " + facultyID,
		Subject:     subject,
		Date:        date,
		StartTime:   time.Now(),
		Status:      models.StatusRecording,
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	return rec
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))
	rec := seedRecording(t, repo, "7", "Algebra", "2026-08-30")

	got, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", got.Subject)
	assert.Equal(t, models.StatusRecording, got.Status)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))
	seedRecording(t, repo, "7", "Algebra", "2026-08-30")
	seedRecording(t, repo, "7", "Physics", "2026-08-29")
	seedRecording(t, repo, "8", "Chemistry", "2026-08-30")

	ctx := context.Background()

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byFaculty, err := repo.List(ctx, ListFilter{FacultyID: "7"})
	require.NoError(t, err)
	assert.Len(t, byFaculty, 2)

	// subject filter is a case-insensitive substring
	bySubject, err := repo.List(ctx, ListFilter{Subject: "alg"})
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, "Algebra", bySubject[0].Subject)

	byDate, err := repo.List(ctx, ListFilter{Date: "2026-08-30"})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	combined, err := repo.List(ctx, ListFilter{FacultyID: "7", Date: "2026-08-30"})
	require.NoError(t, err)
	assert.Len(t, combined, 1)

	none, err := repo.List(ctx, ListFilter{FacultyID: "99"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListOrdersByDateDescending(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))
	seedRecording(t, repo, "7", "Old", "2026-08-01")
	seedRecording(t, repo, "7", "New", "2026-08-30")

	rows, err := repo.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "New", rows[0].Subject)
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordingRepo(db)
	segs := NewTranscriptRepo(db)
	ctx := context.Background()

	inSubject := seedRecording(t, repo, "7", "Quantum Mechanics", "2026-08-30")
	inSummary := seedRecording(t, repo, "7", "Math", "2026-08-29")
	require.NoError(t, repo.SetSummary(ctx, inSummary.ID, "Covers eigenvalues in depth", []string{"eigenvalues"}))
	inSegment := seedRecording(t, repo, "8", "History", "2026-08-28")
	require.NoError(t, segs.Insert(ctx, &models.TranscriptSegment{
		RecordingID: inSegment.ID, TimestampStart: 0, TimestampEnd: 4.5,
		Text: "the treaty of Westphalia", Confidence: 0.9,
	}))

	bySubject, err := repo.Search(ctx, "quantum")
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, inSubject.ID, bySubject[0].ID)

	bySummary, err := repo.Search(ctx, "EIGENVALUES")
	require.NoError(t, err)
	require.Len(t, bySummary, 1)
	assert.Equal(t, inSummary.ID, bySummary[0].ID)

	bySegment, err := repo.Search(ctx, "westphalia")
	require.NoError(t, err)
	require.Len(t, bySegment, 1)
	assert.Equal(t, inSegment.ID, bySegment[0].ID)

	nothing, err := repo.Search(ctx, "biology")
	require.NoError(t, err)
	assert.Empty(t, nothing)
}

func TestSearchCapsResults(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))
	for i := 0; i < 25; i++ {
		seedRecording(t, repo, "7", fmt.Sprintf("Calculus %d", i), "2026-08-30")
	}

	rows, err := repo.Search(context.Background(), "calculus")
	require.NoError(t, err)
	assert.Len(t, rows, searchLimit)
}

func TestDeleteCascadesSegments(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordingRepo(db)
	segs := NewTranscriptRepo(db)
	ctx := context.Background()

	rec := seedRecording(t, repo, "7", "Algebra", "2026-08-30")
	for i := 0; i < 3; i++ {
		require.NoError(t, segs.Insert(ctx, &models.TranscriptSegment{
			RecordingID: rec.ID, TimestampStart: float64(i), TimestampEnd: float64(i + 1),
			Text: "segment", Confidence: 0.9,
		}))
	}

	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	remaining, err := segs.ByRecording(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), utils.ErrNotFound)
}

func TestSegmentsOrderedByStartTime(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordingRepo(db)
	segs := NewTranscriptRepo(db)
	ctx := context.Background()

	rec := seedRecording(t, repo, "7", "Algebra", "2026-08-30")
	for _, start := range []float64{12.5, 0, 6.25} {
		require.NoError(t, segs.Insert(ctx, &models.TranscriptSegment{
			RecordingID: rec.ID, TimestampStart: start, TimestampEnd: start + 2,
			Text: "segment", Confidence: 0.9,
		}))
	}

	rows, err := segs.ByRecording(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 0.0, rows[0].TimestampStart)
	assert.Equal(t, 6.25, rows[1].TimestampStart)
	assert.Equal(t, 12.5, rows[2].TimestampStart)
}

func TestTerminalAndPipelineUpdates(t *testing.T) {
	repo := NewRecordingRepo(newTestDB(t))
	ctx := context.Background()

	rec := seedRecording(t, repo, "7", "Algebra", "2026-08-30")
	end := time.Now()

	require.NoError(t, repo.SetTerminal(ctx, rec.ID, models.StatusCompleted, "recordings/1.mp4", 90, end))
	require.NoError(t, repo.SetTranscript(ctx, rec.ID, "transcripts/transcript_1.txt", "full text"))
	require.NoError(t, repo.SetSummary(ctx, rec.ID, "- point one\n- point two", []string{"point one", "point two"}))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "recordings/1.mp4", got.VideoPath)
	assert.Equal(t, 90, got.Duration)
	assert.Equal(t, "full text", got.TranscriptText)
	assert.Equal(t, []string{"point one", "point two"}, []string(got.KeyPoints))
}
