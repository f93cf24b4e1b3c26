package capture

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Config describes the capture geometry shared by the ffmpeg device and
// writer. Width*Height*3 bytes per packed BGR frame.
type Config struct {
	DevicePath string
	Width      int
	Height     int
	FPS        int
}

func (c Config) frameSize() int { return c.Width * c.Height * 3 }

func (c Config) videoSize() string {
	return strconv.Itoa(c.Width) + "x" + strconv.Itoa(c.Height)
}

// FFmpegDevice reads raw frames from a V4L2 capture device through an ffmpeg
// subprocess decoding to packed BGR on stdout.
type FFmpegDevice struct {
	cfg    Config
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func OpenFFmpegDevice(cfg Config) (*FFmpegDevice, error) {
	cmd := exec.Command("ffmpeg",
		"-f", "v4l2",
		"-framerate", strconv.Itoa(cfg.FPS),
		"-video_size", cfg.videoSize(),
		"-i", cfg.DevicePath,
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-",
	)
	cmd.Stderr = io.Discard

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting capture ffmpeg: %w", err)
	}
	return &FFmpegDevice{cfg: cfg, cmd: cmd, stdout: stdout}, nil
}

// ReadFrame blocks until a full frame arrives. Returns io.EOF when the
// device stream ends (ffmpeg exits or the pipe drains).
func (d *FFmpegDevice) ReadFrame() (Frame, error) {
	buf := make([]byte, d.cfg.frameSize())
	if _, err := io.ReadFull(d.stdout, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return Frame(buf), nil
}

func (d *FFmpegDevice) Close() error {
	_ = d.stdout.Close()
	if d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	_ = d.cmd.Wait()
	return nil
}

// FFmpegWriter encodes raw BGR frames into an H.264 mp4 through an ffmpeg
// subprocess reading from stdin.
type FFmpegWriter struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	logFile *os.File
}

func OpenFFmpegWriter(cfg Config, outputPath string) (*FFmpegWriter, error) {
	cmd := exec.Command("ffmpeg",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-video_size", cfg.videoSize(),
		"-framerate", strconv.Itoa(cfg.FPS),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-y", outputPath,
	)

	// keep encoder diagnostics next to the output file
	logFile, err := os.Create(outputPath + ".ffmpeg.log")
	if err == nil {
		cmd.Stderr = logFile
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("starting encoder ffmpeg: %w", err)
	}
	return &FFmpegWriter{cmd: cmd, stdin: stdin, logFile: logFile}, nil
}

func (w *FFmpegWriter) WriteFrame(f Frame) error {
	_, err := w.stdin.Write(f)
	return err
}

// Close flushes the encoder by closing stdin and waiting for ffmpeg to
// finalize the container.
func (w *FFmpegWriter) Close() error {
	_ = w.stdin.Close()
	err := w.cmd.Wait()
	if w.logFile != nil {
		_ = w.logFile.Close()
	}
	return err
}
