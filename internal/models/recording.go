package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Recording status values. A recording is created as StatusRecording and is
// moved to exactly one terminal status by the capture loop's exit path.
const (
	StatusRecording = "recording"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Recording struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FacultyID   string `gorm:"column:faculty_id;type:text;index" json:"faculty_id"`
	FacultyName string `gorm:"column:faculty_name;type:text" json:"faculty_name"`
	Subject     string `gorm:"column:subject;type:text" json:"subject"`

	Date      string     `gorm:"column:date;type:date;index" json:"date"` // YYYY-MM-DD
	StartTime time.Time  `gorm:"column:start_time" json:"start_time"`
	EndTime   *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	Duration  int        `gorm:"column:duration" json:"duration"` // seconds

	Status string `gorm:"column:status;type:text" json:"status"` // recording|completed|failed

	VideoPath      string `gorm:"column:video_path;type:text" json:"video_path"`
	TranscriptPath string `gorm:"column:transcript_path;type:text" json:"transcript_path"`
	TranscriptText string `gorm:"column:transcript_text;type:text" json:"transcript_text"`

	Summary   string         `gorm:"column:summary;type:text" json:"summary"`
	KeyPoints pq.StringArray `gorm:"column:key_points;type:text[]" json:"key_points"`

	// Snapshot of the capture settings (resolution, fps, device) taken when
	// the session started.
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Recording) TableName() string { return "recordings" }

// TranscriptSegment is one timed slice of a recording's transcript.
// Segments are inserted in bulk after transcription and never updated;
// they are removed only by the cascading recording delete.
type TranscriptSegment struct {
	ID          uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RecordingID uint `gorm:"column:recording_id;index" json:"recording_id"`

	TimestampStart float64 `gorm:"column:timestamp_start" json:"timestamp_start"` // seconds from recording start
	TimestampEnd   float64 `gorm:"column:timestamp_end" json:"timestamp_end"`
	Text           string  `gorm:"column:text;type:text" json:"text"`
	Confidence     float64 `gorm:"column:confidence" json:"confidence"` // 0.0-1.0
}

func (TranscriptSegment) TableName() string { return "transcripts" }
