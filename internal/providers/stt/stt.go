package stt

import "context"

// Segment is one timed slice of engine output, seconds relative to the
// start of the audio.
type Segment struct {
	Start      float64
	End        float64
	Text       string
	Confidence float64 // 0 when the engine omits it
}

// Result is everything a transcription run produces: the full text plus the
// ordered segments it was assembled from.
type Result struct {
	Text     string
	Segments []Segment
}

type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (*Result, error)
	Close() error
}
