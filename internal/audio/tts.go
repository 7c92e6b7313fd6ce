// Package audio provides the text-to-speech collaborator. Speech is
// fire-and-forget: the games never wait on it and never see its errors.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SpeechOptions mirror the utterance parameters of the original client.
type SpeechOptions struct {
	Language string
	Pitch    float64
	Rate     float64
}

// Speaker speaks a phrase out loud, or at least caches the audio for the
// presentation layer to play.
type Speaker interface {
	Speak(text string, opts SpeechOptions)
}

// Nop is a Speaker that does nothing, for tests and headless runs.
type Nop struct{}

func (Nop) Speak(string, SpeechOptions) {}

const ttsRequestTimeout = 10 * time.Second

// TTSService fetches speech audio from the Google Translate TTS endpoint and
// caches it as MP3 files for the presentation layer. Pitch and rate are
// accepted for interface compatibility; the endpoint does not support them.
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a new TTS service caching under audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// Speak fetches and caches audio for text in the background. Failures are
// logged as warnings and never reach the caller.
func (s *TTSService) Speak(text string, opts SpeechOptions) {
	go func() {
		if _, err := s.GenerateAudioFile(text, opts.Language); err != nil {
			slog.Warn("text-to-speech failed", "text", text, "error", err)
		}
	}()
}

// GenerateAudioFile converts text to speech and saves it as MP3, reusing a
// cached file when one exists. Returns the filename (not full path).
func (s *TTSService) GenerateAudioFile(text, language string) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("tts_%s.mp3", sanitized)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := s.fetchGoogleTTS(text, language, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// fetchGoogleTTS uses Google Translate's text-to-speech endpoint, a simple
// free option that needs no API key.
func (s *TTSService) fetchGoogleTTS(text, language, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	if language == "" {
		language = "es-ES"
	}

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
