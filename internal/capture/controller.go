package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

type DeviceOpener func() (Device, error)

type WriterOpener func(outputPath string) (FrameWriter, error)

// Controller owns the single shared capture device and enforces
// at-most-one-active-recording. The live session is guarded by a mutex; the
// loop runs on its own goroutine and observes stop requests through a
// channel, so the invariant holds regardless of scheduling.
type Controller struct {
	Repo          postgres.RecordingRepo
	Log           *logrus.Logger
	Cfg           Config
	RecordingsDir string

	// OpenDevice/OpenWriter default to the ffmpeg implementations.
	OpenDevice DeviceOpener
	OpenWriter WriterOpener

	// Annotator is the optional face-presence overlay pass. Nil disables it.
	Annotator FaceAnnotator

	// StopWait bounds how long Stop waits for the loop to exit. Defaults to 5s.
	StopWait time.Duration

	mu      sync.Mutex
	session *Session
	stop    chan struct{}
	done    chan loopResult
}

type loopResult struct {
	recordingID uint
	err         error
}

// Status is the controller's observable state, used by health and the
// status websocket.
type Status struct {
	Active      bool       `json:"active"`
	RecordingID uint       `json:"recording_id,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	ElapsedSec  int        `json:"elapsed_seconds,omitempty"`
}

func NewController(repo postgres.RecordingRepo, log *logrus.Logger, cfg Config, recordingsDir string) *Controller {
	return &Controller{
		Repo:          repo,
		Log:           log,
		Cfg:           cfg,
		RecordingsDir: recordingsDir,
	}
}

// defaults fills unset dependencies. Callers must hold c.mu so concurrent
// starts do not write the shared fields unsynchronized.
func (c *Controller) defaults() {
	if c.Log == nil {
		c.Log = logrus.New()
	}
	if c.StopWait <= 0 {
		c.StopWait = 5 * time.Second
	}
	if c.OpenDevice == nil {
		c.OpenDevice = func() (Device, error) { return OpenFFmpegDevice(c.Cfg) }
	}
	if c.OpenWriter == nil {
		c.OpenWriter = func(p string) (FrameWriter, error) { return OpenFFmpegWriter(c.Cfg, p) }
	}
}

// Start persists a new recording row, builds the session, and launches the
// capture loop. Fails with CONFLICT while another recording is active.
func (c *Controller) Start(ctx context.Context, facultyID, facultyName, subject string) (uint, error) {
	const op = "CaptureController.Start"

	if facultyID == "" || subject == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "faculty_id and subject are required", nil)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults()

	if c.session != nil {
		return 0, utils.E(utils.CodeConflict, op, "recording already in progress", nil)
	}

	now := time.Now()
	meta, _ := json.Marshal(map[string]any{
		"device": c.Cfg.DevicePath,
		"width":  c.Cfg.Width,
		"height": c.Cfg.Height,
		"fps":    c.Cfg.FPS,
	})

	rec := &models.Recording{
		FacultyID:   facultyID,
		FacultyName: facultyName,
		Subject:     subject,
		Date:        now.Format("2006-01-02"),
		StartTime:   now,
		Status:      models.StatusRecording,
		Metadata:    datatypes.JSON(meta),
		CreatedAt:   now,
	}
	if err := c.Repo.Create(ctx, rec); err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to create recording", err)
	}

	filename := fmt.Sprintf("%d_%s_%s.mp4", rec.ID, facultyID, now.Format("20060102_150405"))
	sess := &Session{
		RecordingID: rec.ID,
		FacultyID:   facultyID,
		FacultyName: facultyName,
		Subject:     subject,
		StartTime:   now,
		VideoPath:   filepath.Join(c.RecordingsDir, filename),
	}

	c.session = sess
	c.stop = make(chan struct{})
	c.done = make(chan loopResult, 1)

	c.Log.WithFields(logrus.Fields{
		"recording_id": rec.ID,
		"faculty_id":   facultyID,
		"subject":      subject,
	}).Info("recording started")

	go c.run(sess, c.stop, c.done)
	return rec.ID, nil
}

// Stop signals the loop, waits up to StopWait for it to exit, and clears the
// session before returning. The terminal status write happens inside the
// loop's exit path, so a reader racing Stop may briefly still see the
// `recording` status.
func (c *Controller) Stop() (uint, error) {
	const op = "CaptureController.Stop"

	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return 0, utils.E(utils.CodeFailedPrecondition, op, "no active recording", nil)
	}
	sess := c.session
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
	done := c.done
	wait := c.StopWait
	c.mu.Unlock()

	select {
	case <-done:
	case <-time.After(wait):
		c.Log.WithField("recording_id", sess.RecordingID).
			Warn("capture loop did not exit within stop timeout")
	}

	c.clearSession(sess)
	c.Log.WithField("recording_id", sess.RecordingID).Info("recording stopped")
	return sess.RecordingID, nil
}

func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

func (c *Controller) Snapshot() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Status{}
	}
	started := c.session.StartTime
	return Status{
		Active:      true,
		RecordingID: c.session.RecordingID,
		Subject:     c.session.Subject,
		StartedAt:   &started,
		ElapsedSec:  int(time.Since(started).Seconds()),
	}
}

func (c *Controller) clearSession(sess *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess {
		c.session = nil
		c.stop = nil
		c.done = nil
	}
}

// run executes the capture loop and always performs the terminal status
// write: completed on a clean exit, failed on any device or encoder error.
func (c *Controller) run(sess *Session, stop <-chan struct{}, done chan<- loopResult) {
	err := c.loop(sess, stop)

	end := time.Now()
	duration := int(end.Sub(sess.StartTime).Seconds())

	status := models.StatusCompleted
	if err != nil {
		status = models.StatusFailed
		c.Log.WithError(err).WithField("recording_id", sess.RecordingID).Error("capture loop failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if dbErr := c.Repo.SetTerminal(ctx, sess.RecordingID, status, sess.VideoPath, duration, end); dbErr != nil {
		c.Log.WithError(dbErr).WithField("recording_id", sess.RecordingID).
			Error("failed to write terminal recording status")
	}

	c.clearSession(sess)
	done <- loopResult{recordingID: sess.RecordingID, err: err}
}

func (c *Controller) loop(sess *Session, stop <-chan struct{}) error {
	dev, err := c.OpenDevice()
	if err != nil {
		return fmt.Errorf("opening capture device: %w", err)
	}
	defer dev.Close()

	w, err := c.OpenWriter(sess.VideoPath)
	if err != nil {
		return fmt.Errorf("opening video writer: %w", err)
	}

	loopErr := func() error {
		for {
			select {
			case <-stop:
				return nil
			default:
			}

			frame, err := dev.ReadFrame()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading frame: %w", err)
			}

			if c.Annotator != nil {
				if annotated, aerr := c.Annotator.Annotate(frame); aerr == nil {
					frame = annotated
				}
			}

			if err := w.WriteFrame(frame); err != nil {
				return fmt.Errorf("writing frame: %w", err)
			}
		}
	}()

	if cerr := w.Close(); cerr != nil && loopErr == nil {
		loopErr = fmt.Errorf("finalizing video: %w", cerr)
	}
	return loopErr
}
