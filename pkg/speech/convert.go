package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// AudioConverter normalizes browser audio (WebM/Opus) into 16kHz mono WAV,
// the format the transcription service expects.
type AudioConverter interface {
	ToWav(ctx context.Context, input []byte) ([]byte, error)
}

type ffmpegConverter struct {
	binPath string
}

func NewFfmpegConverter(binPath string) AudioConverter {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &ffmpegConverter{binPath: binPath}
}

func (c *ffmpegConverter) ToWav(ctx context.Context, input []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.binPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w (%s)", err, stderr.String())
	}

	return stdout.Bytes(), nil
}
