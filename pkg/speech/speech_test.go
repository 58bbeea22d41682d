package speech

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWhisperClientTranscribe(t *testing.T) {
	audio := []byte("fake-wav-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/asr" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "fr" {
			t.Errorf("language = %q, want fr", got)
		}

		file, _, err := r.FormFile("audio_file")
		if err != nil {
			t.Errorf("missing audio_file part: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer file.Close()
		buf := &bytes.Buffer{}
		buf.ReadFrom(file)
		if !bytes.Equal(buf.Bytes(), audio) {
			t.Error("uploaded audio does not match input")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": " J'ai mal à la tête. ", "language": "fr"}`))
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL)
	text, err := client.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if text != "J'ai mal à la tête." {
		t.Fatalf("Transcribe() = %q", text)
	}
}

func TestWhisperClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewWhisperClient(server.URL)
	_, err := client.Transcribe(context.Background(), []byte("x"))
	if err == nil {
		t.Fatal("Transcribe() expected error on 500")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("error should carry server body, got %v", err)
	}
}

func TestPiperClientSynthesize(t *testing.T) {
	wav := []byte("RIFF....WAVE")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("text"); got != "Bonjour" {
			t.Errorf("text = %q, want Bonjour", got)
		}
		if got := r.URL.Query().Get("voice"); got != "fr_FR-siwis-medium" {
			t.Errorf("voice = %q", got)
		}
		w.Write(wav)
	}))
	defer server.Close()

	client := NewPiperClient(server.URL, "fr_FR-siwis-medium")
	out, err := client.Synthesize(context.Background(), "Bonjour")
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if !bytes.Equal(out, wav) {
		t.Fatalf("Synthesize() = %q", out)
	}
}

func TestPiperClientOmitsEmptyVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["voice"]; ok {
			t.Error("voice param should be omitted when unset")
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewPiperClient(server.URL, "")
	if _, err := client.Synthesize(context.Background(), "test"); err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
}
