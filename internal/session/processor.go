package session

import (
	"context"
	"strings"

	"github.com/rog05/voice-agent/internal/agent"
	"github.com/rog05/voice-agent/internal/intent"
	"github.com/rog05/voice-agent/internal/lang"
)

// Outcome is everything a completed turn produces, ready to speak and log.
type Outcome struct {
	Transcript string
	Language   lang.Tag
	Intent     intent.Intent
	Response   string
	Summary    string
}

// Processor runs the text half of the pipeline: language detection, intent
// classification, and response generation with the safety gates. It is shared
// by the interactive loop and the HTTP upload path.
type Processor struct {
	stt      Transcriber
	detector *lang.Detector
	agent    *agent.Agent
}

func NewProcessor(stt Transcriber, detector *lang.Detector, a *agent.Agent) *Processor {
	if detector == nil {
		detector = lang.NewDetector()
	}
	return &Processor{stt: stt, detector: detector, agent: a}
}

// Transcribe converts one utterance to text. An empty transcript is
// ErrNoTranscript, distinct from a transcriber failure.
func (p *Processor) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	text, err := p.stt.Transcribe(ctx, pcm)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoTranscript
	}
	return text, nil
}

// Detect returns the language tag for a transcript.
func (p *Processor) Detect(text string) lang.Tag {
	return p.detector.Detect(text)
}

// ProcessText runs detection, classification and response for a transcript.
// It always yields an Outcome; downstream failures surface as the fallback
// response with the ERROR intent, never as an error.
func (p *Processor) ProcessText(ctx context.Context, transcript string) Outcome {
	language := p.detector.Detect(transcript)
	resp := p.agent.Respond(ctx, transcript, language)

	return Outcome{
		Transcript: transcript,
		Language:   language,
		Intent:     resp.Intent,
		Response:   resp.Text,
		Summary:    intent.Summary(resp.Intent),
	}
}

// ProcessPCM is the file/upload path: transcribe, then ProcessText.
func (p *Processor) ProcessPCM(ctx context.Context, pcm []float32) (Outcome, error) {
	transcript, err := p.Transcribe(ctx, pcm)
	if err != nil {
		return Outcome{}, err
	}
	return p.ProcessText(ctx, transcript), nil
}
