package session

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"github.com/rog05/voice-agent/internal/agent"
	"github.com/rog05/voice-agent/internal/audio"
	"github.com/rog05/voice-agent/internal/lang"
	"github.com/rog05/voice-agent/internal/store"
)

// State of the interaction loop.
type State int

const (
	StateGreeting State = iota
	StateListening
	StateProcessing
	StateSpeaking
	StateTerminated
)

// Exit commands are matched case-insensitively against the transcript, one
// list covering all supported languages.
var exitCommands = []string{
	"exit", "quit", "goodbye", "bye", "stop",
	"बाहर निकलें", "बंद करें", "बाय",
	"बाहेर पडा", "बंद करा",
}

// IsExitCommand reports whether the transcript asks to end the session.
func IsExitCommand(text string) bool {
	lower := strings.ToLower(text)
	for _, cmd := range exitCommands {
		if strings.Contains(lower, cmd) {
			return true
		}
	}
	return false
}

// Session owns the loop state: the active state machine position and the
// number of completed interactions. All collaborators are injected at
// construction; there are no ambient globals.
type Session struct {
	listener Listener
	proc     *Processor
	speaker  Speaker
	repo     store.Store

	interactions int
}

func New(listener Listener, proc *Processor, speaker Speaker, repo store.Store) *Session {
	return &Session{
		listener: listener,
		proc:     proc,
		speaker:  speaker,
		repo:     repo,
	}
}

// Interactions returns the number of turns completed and logged.
func (s *Session) Interactions() int {
	return s.interactions
}

// Run drives the state machine until an exit command or ctx cancellation.
// Cancellation is checked at every transition boundary, so an interrupt
// during listening terminates without logging a half-finished turn.
func (s *Session) Run(ctx context.Context) error {
	state := StateGreeting

	var (
		transcript string
		out        Outcome
	)

	for state != StateTerminated {
		if ctx.Err() != nil {
			state = StateTerminated
			break
		}

		switch state {
		case StateGreeting:
			log.Info("Session started")
			if err := s.speaker.Speak(ctx, agent.Greeting, lang.English); err != nil {
				log.Error("Failed to speak greeting", "err", err)
			}
			state = StateListening

		case StateListening:
			text, next := s.listen(ctx)
			transcript = text
			state = next

		case StateProcessing:
			out = s.proc.ProcessText(ctx, transcript)
			log.Info("Processed turn",
				"language", out.Language, "intent", out.Intent)
			state = StateSpeaking

		case StateSpeaking:
			s.speakAndLog(ctx, out)
			state = StateListening
		}
	}

	s.printSummary(ctx)
	return ctx.Err()
}

// listen captures one utterance and transcribes it. No speech and
// transcription failures both retry the listening state; an exit command
// short-circuits to farewell and termination.
func (s *Session) listen(ctx context.Context) (string, State) {
	log.Info("Listening...")

	utterance, err := s.listener.Listen(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return "", StateTerminated
		}
		log.Error("Capture failed", "err", err)
		return "", StateListening
	}
	if utterance.Status == audio.CaptureNoSpeech {
		log.Info("No speech detected")
		return "", StateListening
	}

	transcript, err := s.proc.Transcribe(ctx, utterance.PCM)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", StateTerminated
		}
		if !errors.Is(err, ErrNoTranscript) {
			log.Error("Transcription failed", "err", err)
		}
		return "", StateListening
	}

	log.Info("Transcribed", "text", transcript)

	if IsExitCommand(transcript) {
		log.Info("User requested to exit")
		language := s.proc.Detect(transcript)
		if err := s.speaker.Speak(ctx, agent.Farewell(language), language); err != nil {
			log.Error("Failed to speak farewell", "err", err)
		}
		return "", StateTerminated
	}

	return transcript, StateProcessing
}

// speakAndLog delivers the reply, then writes exactly one interaction record.
// Synthesis failure degrades to text-only; a persistence failure is loud but
// does not retract the already delivered reply.
func (s *Session) speakAndLog(ctx context.Context, out Outcome) {
	log.Info("Riya", "language", out.Language, "text", out.Response)

	if err := s.speaker.Speak(ctx, out.Response, out.Language); err != nil {
		log.Error("Synthesis failed, continuing text-only", "err", err)
	}

	rec := &store.Interaction{
		Timestamp:  time.Now(),
		Language:   string(out.Language),
		Transcript: out.Transcript,
		Intent:     string(out.Intent),
		Response:   out.Response,
		Summary:    out.Summary,
	}
	// The reply was already delivered; an interrupt must not lose its record.
	if _, err := s.repo.Log(context.WithoutCancel(ctx), rec); err != nil {
		log.Error("Failed to log interaction, audit trail incomplete", "err", err)
	} else {
		s.interactions++
		log.Info("Interaction logged", "id", rec.ID, "total", s.interactions)
	}
}

func (s *Session) printSummary(ctx context.Context) {
	if s.interactions == 0 {
		log.Info("Session ended", "interactions", 0)
		return
	}

	stats, err := s.repo.Stats(context.WithoutCancel(ctx))
	if err != nil {
		log.Error("Failed to read session stats", "err", err)
		return
	}
	log.Info("Session ended",
		"interactions", s.interactions,
		"total_logged", stats.Total,
		"by_intent", stats.ByIntent,
		"by_language", stats.ByLanguage,
	)
}
