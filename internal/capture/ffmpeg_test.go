package capture

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFrameSize(t *testing.T) {
	cfg := Config{Width: 4, Height: 2, FPS: 30}
	assert.Equal(t, 4*2*3, cfg.frameSize())
	assert.Equal(t, "4x2", cfg.videoSize())
}

func TestFFmpegWriterCloseReleasesLogFile(t *testing.T) {
	logFile, err := os.CreateTemp(t.TempDir(), "enc-*.log")
	require.NoError(t, err)

	cmd := exec.Command("cat")
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	w := &FFmpegWriter{cmd: cmd, stdin: stdin, logFile: logFile}
	require.NoError(t, w.Close())

	_, err = logFile.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
