package capture

import "time"

// Frame is one raw video frame as produced by a Device. The byte layout is
// whatever the device and writer agreed on (packed BGR for the ffmpeg pair).
type Frame []byte

// Device is a source of frames. ReadFrame blocks until a frame is available
// and returns io.EOF when the stream ends. A Device is owned exclusively by
// the capture loop between Open and Close.
type Device interface {
	ReadFrame() (Frame, error)
	Close() error
}

// FrameWriter consumes frames and encodes them into the output file.
type FrameWriter interface {
	WriteFrame(Frame) error
	Close() error
}

// FaceAnnotator draws presence annotations onto a frame. It is best-effort:
// errors are logged and the unannotated frame is written instead. A nil
// annotator disables the pass without changing any external behavior.
type FaceAnnotator interface {
	Annotate(Frame) (Frame, error)
}

// Session describes the one in-progress capture. It exists only between
// Start and the loop's exit and is never persisted.
type Session struct {
	RecordingID uint
	FacultyID   string
	FacultyName string
	Subject     string
	StartTime   time.Time
	VideoPath   string
}
