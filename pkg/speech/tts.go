package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Synthesizer turns text into spoken audio (WAV bytes).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type piperClient struct {
	baseURL    string
	voice      string
	httpClient *http.Client
}

func NewPiperClient(baseURL, voice string) Synthesizer {
	return &piperClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		voice:   voice,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *piperClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	params := url.Values{}
	params.Set("text", text)
	if c.voice != "" {
		params.Set("voice", c.voice)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tts?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error: %s - %s", resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}
