package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"telemed-be/internal/config"
	"telemed-be/internal/pkg/logger"
	"telemed-be/pkg/speech"

	"github.com/google/uuid"
)

// AudioStore synthesizes assistant replies and stores them as WAV files
// under the static audio directory. Synthesis failure downgrades the
// turn to text only; it never fails the caller.
type AudioStore struct {
	synthesizer speech.Synthesizer
	cfg         config.SpeechConfig
	log         logger.ILogger
}

func NewAudioStore(synthesizer speech.Synthesizer, cfg config.SpeechConfig, log logger.ILogger) *AudioStore {
	return &AudioStore{
		synthesizer: synthesizer,
		cfg:         cfg,
		log:         log,
	}
}

// Attach returns the public path of the stored audio file, or empty when
// synthesis is unavailable or failed.
func (a *AudioStore) Attach(ctx context.Context, sessionId, text string) string {
	if a == nil || a.synthesizer == nil || text == "" {
		return ""
	}

	audio, err := a.synthesizer.Synthesize(ctx, text)
	if err != nil {
		a.log.Warn("service.audio", "speech synthesis failed, returning text only", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return ""
	}

	if err := os.MkdirAll(a.cfg.AudioResponsesDir, 0o755); err != nil {
		a.log.Warn("service.audio", "cannot create audio directory", map[string]interface{}{
			"dir":   a.cfg.AudioResponsesDir,
			"error": err.Error(),
		})
		return ""
	}

	name := fmt.Sprintf("%s.wav", uuid.New().String())
	path := filepath.Join(a.cfg.AudioResponsesDir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		a.log.Warn("service.audio", "cannot write audio file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return ""
	}

	return "/" + filepath.ToSlash(path)
}
