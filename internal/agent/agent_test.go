package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rog05/voice-agent/internal/intent"
	"github.com/rog05/voice-agent/internal/lang"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Generate(_ context.Context, _ string, _ lang.Tag, _ intent.Intent) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestRespondAppointmentUsesGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "Sure, what day works for you?"}
	a := New(gen)

	resp := a.Respond(context.Background(), "I want to book an appointment", lang.English)

	require.Equal(t, intent.Appointment, resp.Intent)
	require.Equal(t, "Sure, what day works for you?", resp.Text)
	require.NotEqual(t, Fallback(lang.English), resp.Text)
	require.Equal(t, 1, gen.calls)
}

func TestRespondClinicInfo(t *testing.T) {
	gen := &stubGenerator{reply: "We are open 9am to 5pm, Monday through Friday."}
	a := New(gen)

	resp := a.Respond(context.Background(), "What are your working hours?", lang.English)

	require.Equal(t, intent.ClinicInfo, resp.Intent)
	require.Equal(t, gen.reply, resp.Text)
}

// Out-of-scope turns must short-circuit: the generator is never invoked and
// the reply is the fallback message byte-for-byte.
func TestRespondOutOfScopeSkipsGenerator(t *testing.T) {
	gen := &stubGenerator{reply: "should never be used"}
	a := New(gen)

	resp := a.Respond(context.Background(), "I have a headache, what should I do?", lang.English)

	require.Equal(t, intent.OutOfScope, resp.Intent)
	require.Equal(t, Fallback(lang.English), resp.Text)
	require.Zero(t, gen.calls)
}

func TestRespondOutOfScopeUsesDetectedLanguageFallback(t *testing.T) {
	a := New(&stubGenerator{})

	resp := a.Respond(context.Background(), "मुझे बुखार है", lang.Hindi)

	require.Equal(t, intent.OutOfScope, resp.Intent)
	require.Equal(t, Fallback(lang.Hindi), resp.Text)
}

func TestRespondGeneratorFailureFallsBackWithErrorIntent(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream unavailable")}
	a := New(gen)

	resp := a.Respond(context.Background(), "I want to book an appointment", lang.English)

	require.Equal(t, intent.Error, resp.Intent)
	require.Equal(t, Fallback(lang.English), resp.Text)
	require.Equal(t, 1, gen.calls)
}

// The validator is a second gate behind generation: a generated reply that
// drifts into medical territory is replaced wholesale.
func TestValidatorReplacesMedicalReply(t *testing.T) {
	gen := &stubGenerator{reply: "You should take medicine for that before your visit."}
	a := New(gen)

	resp := a.Respond(context.Background(), "I want to book an appointment", lang.English)

	require.Equal(t, intent.Appointment, resp.Intent)
	require.Equal(t, Fallback(lang.English), resp.Text)
}

func TestValidatorPassesCleanReply(t *testing.T) {
	v := NewValidator()
	text := "Your appointment is confirmed for Tuesday at 10am."
	require.Equal(t, text, v.Validate(text, intent.Appointment, lang.English))
}

func TestFallbackUnknownLanguageDefaultsToEnglish(t *testing.T) {
	require.Equal(t, Fallback(lang.English), Fallback(lang.Tag("French")))
	require.Equal(t, Farewell(lang.English), Farewell(lang.Tag("French")))
}
