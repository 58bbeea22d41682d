package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"telemed-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return f.audio, f.err
}

func TestAudioStoreAttachWritesWavAndReturnsPublicPath(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := "static/audio_responses"
	store := NewAudioStore(&fakeSynthesizer{audio: []byte("RIFF")}, config.SpeechConfig{AudioResponsesDir: dir}, testLogger{})

	path := store.Attach(context.Background(), "s1", "Bonjour")
	require.NotEmpty(t, path)

	assert.True(t, strings.HasPrefix(path, "/static/audio_responses/"))
	assert.True(t, strings.HasSuffix(path, ".wav"))

	onDisk := filepath.Join(dir, filepath.Base(path))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), data)
}

func TestAudioStoreAttachDegradesToTextOnly(t *testing.T) {
	store := NewAudioStore(&fakeSynthesizer{err: errors.New("tts down")}, config.SpeechConfig{AudioResponsesDir: t.TempDir()}, testLogger{})
	assert.Empty(t, store.Attach(context.Background(), "s1", "Bonjour"))

	store = NewAudioStore(nil, config.SpeechConfig{}, testLogger{})
	assert.Empty(t, store.Attach(context.Background(), "s1", "Bonjour"))

	store = NewAudioStore(&fakeSynthesizer{audio: []byte("RIFF")}, config.SpeechConfig{AudioResponsesDir: t.TempDir()}, testLogger{})
	assert.Empty(t, store.Attach(context.Background(), "s1", ""))
}
