package tts

import (
	"context"
	"fmt"

	"github.com/rog05/voice-agent/internal/audio"
	"github.com/rog05/voice-agent/internal/lang"
)

// Speaker synthesizes reply text and plays it on the local speaker. Used by
// the interactive session loop; the HTTP path serves the MP3 instead.
type Speaker struct {
	synth *Synthesizer
}

func NewSpeaker(synth *Synthesizer) *Speaker {
	return &Speaker{synth: synth}
}

func (s *Speaker) Speak(ctx context.Context, text string, language lang.Tag) error {
	data, err := s.synth.Synthesize(ctx, text, language)
	if err != nil {
		return err
	}
	if err := audio.PlayMP3(data); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
