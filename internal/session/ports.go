// Package session drives the greet, listen, respond, speak, log loop.
package session

import (
	"context"
	"errors"

	"github.com/rog05/voice-agent/internal/audio"
	"github.com/rog05/voice-agent/internal/lang"
)

// ErrNoTranscript marks a captured utterance the transcriber produced no text
// for. Callers treat it like silence and retry listening.
var ErrNoTranscript = errors.New("no transcript produced")

// Listener produces one bounded utterance or a no-speech outcome.
type Listener interface {
	Listen(ctx context.Context) (audio.Capture, error)
}

// Transcriber is the speech-to-text collaborator boundary.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

// Speaker renders the final reply text audibly.
type Speaker interface {
	Speak(ctx context.Context, text string, language lang.Tag) error
}
