package media

import (
	"context"
	"fmt"
	"os/exec"
)

// ExtractAudio pulls a mono 16kHz PCM wav out of a video file. The speech
// engine expects exactly this shape. Failures are fatal to the transcription
// request and are not retried.
func ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
		"-y",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("extracting audio: %w\n%s", err, string(out))
	}
	return nil
}
