// Package agent turns a classified transcript into a spoken reply, keeping the
// receptionist inside its non-medical scope.
package agent

import (
	"context"
	log "log/slog"

	"github.com/rog05/voice-agent/internal/intent"
	"github.com/rog05/voice-agent/internal/lang"
)

// Generator is the LLM collaborator boundary. A single failure is a full turn
// failure; the agent never retries.
type Generator interface {
	Generate(ctx context.Context, transcript string, language lang.Tag, it intent.Intent) (string, error)
}

// Response is the final reply for one turn.
type Response struct {
	Text     string
	Language lang.Tag
	Intent   intent.Intent
}

type Agent struct {
	gen        Generator
	classifier *intent.Classifier
	validator  *Validator
}

func New(gen Generator) *Agent {
	return &Agent{
		gen:        gen,
		classifier: intent.NewClassifier(),
		validator:  NewValidator(),
	}
}

// Respond classifies the transcript and produces the reply. It never fails:
// out-of-scope turns short-circuit to the fallback before the generator is
// invoked, and a generator failure degrades to the fallback with the intent
// recorded as ERROR.
func (a *Agent) Respond(ctx context.Context, transcript string, language lang.Tag) Response {
	it := a.classifier.Classify(transcript)
	log.Debug("Classified", "intent", it, "language", language)

	if it == intent.OutOfScope {
		return Response{
			Text:     Fallback(language),
			Language: language,
			Intent:   it,
		}
	}

	text, err := a.gen.Generate(ctx, transcript, language, it)
	if err != nil {
		log.Error("Failed to generate reply, using fallback", "err", err)
		return Response{
			Text:     Fallback(language),
			Language: language,
			Intent:   intent.Error,
		}
	}

	return Response{
		Text:     a.validator.Validate(text, it, language),
		Language: language,
		Intent:   it,
	}
}
