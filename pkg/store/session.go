package store

import (
	"sync"
	"time"
)

// VoiceSession is the in-memory state of one realtime assistant
// connection. The audio buffer accumulates webm chunks between silence
// flushes; Mu serializes processing so only one flush runs at a time.
type VoiceSession struct {
	ID     string
	UserID string

	Mu sync.Mutex

	buffer       []byte
	lastActivity time.Time

	mu sync.Mutex
}

func NewVoiceSession(id, userID string) *VoiceSession {
	return &VoiceSession{
		ID:           id,
		UserID:       userID,
		lastActivity: time.Now(),
	}
}

// AppendAudio adds a chunk to the buffer and refreshes activity time.
func (s *VoiceSession) AppendAudio(chunk []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = append(s.buffer, chunk...)
	s.lastActivity = time.Now()
}

// TakeBuffer returns the accumulated audio and clears the buffer in the
// same critical section, so chunks arriving during processing land in a
// fresh buffer for the next turn.
func (s *VoiceSession) TakeBuffer() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.buffer
	s.buffer = nil
	return buf
}

func (s *VoiceSession) BufferSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// SilentSince reports whether no audio arrived for at least d and the
// buffer holds pending audio.
func (s *VoiceSession) SilentSince(d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer) > 0 && time.Since(s.lastActivity) >= d
}
