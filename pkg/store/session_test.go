package store

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

func TestVoiceSessionAppendAndTake(t *testing.T) {
	s := NewVoiceSession("s1", "u1")

	s.AppendAudio([]byte{0x1a, 0x45})
	s.AppendAudio([]byte{0xdf, 0xa3})

	if got := s.BufferSize(); got != 4 {
		t.Fatalf("BufferSize() = %d, want 4", got)
	}

	buf := s.TakeBuffer()
	if !bytes.Equal(buf, []byte{0x1a, 0x45, 0xdf, 0xa3}) {
		t.Fatalf("TakeBuffer() = %v", buf)
	}
	if got := s.BufferSize(); got != 0 {
		t.Fatalf("buffer not cleared, size %d", got)
	}
	if buf := s.TakeBuffer(); buf != nil {
		t.Fatalf("second TakeBuffer() = %v, want nil", buf)
	}
}

func TestVoiceSessionSilentSince(t *testing.T) {
	s := NewVoiceSession("s1", "u1")

	// Empty buffer never counts as silence to flush.
	if s.SilentSince(0) {
		t.Fatal("SilentSince(0) = true with empty buffer")
	}

	s.AppendAudio([]byte{0x01})
	if s.SilentSince(time.Minute) {
		t.Fatal("SilentSince(1m) = true right after a chunk")
	}

	time.Sleep(15 * time.Millisecond)
	if !s.SilentSince(10 * time.Millisecond) {
		t.Fatal("SilentSince(10ms) = false after waiting")
	}

	// A new chunk resets the clock.
	s.AppendAudio([]byte{0x02})
	if s.SilentSince(10 * time.Millisecond) {
		t.Fatal("SilentSince(10ms) = true after fresh chunk")
	}
}

func TestVoiceSessionConcurrentAppend(t *testing.T) {
	s := NewVoiceSession("s1", "u1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AppendAudio([]byte{0x00, 0x01})
			}
		}()
	}
	wg.Wait()

	if got := s.BufferSize(); got != 8*100*2 {
		t.Fatalf("BufferSize() = %d, want %d", got, 8*100*2)
	}
}
