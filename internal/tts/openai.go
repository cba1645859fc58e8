// Package tts renders final reply text to speech through the OpenAI audio API.
package tts

import (
	"context"
	"fmt"
	"io"

	openai "github.com/openai/openai-go/v3"

	"github.com/rog05/voice-agent/internal/lang"
)

type Synthesizer struct {
	client openai.Client
	model  openai.SpeechModel
	voice  openai.AudioSpeechNewParamsVoice
}

func NewSynthesizer(client openai.Client, model, voice string) *Synthesizer {
	return &Synthesizer{
		client: client,
		model:  openai.SpeechModel(model),
		voice:  openai.AudioSpeechNewParamsVoice(voice),
	}
}

// Synthesize renders text to MP3 bytes in the given language.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, language lang.Tag) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	res, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          s.model,
		Input:          text,
		Voice:          s.voice,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Instructions:   openai.String(fmt.Sprintf("Speak %s with a polite Indian accent, calm and clear.", language)),
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty synthesis response")
	}
	return data, nil
}
