package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

// ErrVoiceUnavailable is returned when no transcription API key is
// configured.
var ErrVoiceUnavailable = errors.New("voice search not configured")

// VoiceService turns short audio clips into plain search text. Transcription
// is the one operation in the engine with an explicit cancellation contract:
// the caller's context is cancelled when the capturing screen loses focus,
// and the in-flight job is abandoned with it.
type VoiceService struct {
	apiKey string
	logger *logging.ChanneledLogger
}

// NewVoiceService creates the voice search service. An empty apiKey disables
// it; Transcribe then fails fast with ErrVoiceUnavailable.
func NewVoiceService(apiKey string, logger *logging.ChanneledLogger) *VoiceService {
	return &VoiceService{apiKey: apiKey, logger: logger}
}

// Enabled reports whether transcription is configured.
func (s *VoiceService) Enabled() bool {
	return s.apiKey != ""
}

// Transcribe uploads the audio clip and waits for its transcript. Cancelling
// ctx abandons the job; the result of an abandoned job is discarded by the
// SDK, never delivered.
func (s *VoiceService) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	if s.apiKey == "" {
		return "", ErrVoiceUnavailable
	}

	start := time.Now()
	client := assemblyai.NewClient(s.apiKey)

	transcript, err := client.Transcripts.TranscribeFromReader(ctx, audio, nil)
	if err != nil {
		if s.logger != nil {
			s.logger.System().Warn("Transcription failed", "error", err.Error(), "duration", time.Since(start))
		}
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text := ""
	if transcript.Text != nil {
		text = *transcript.Text
	}

	if s.logger != nil {
		s.logger.System().Info("Transcription complete", "chars", len(text), "duration", time.Since(start))
	}
	return text, nil
}
