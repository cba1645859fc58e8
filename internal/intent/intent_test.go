package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyAppointment(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, Appointment, c.Classify("I want to book an appointment"))
	require.Equal(t, Appointment, c.Classify("Can I reschedule my consultation?"))
	require.Equal(t, Appointment, c.Classify("मुझे अपॉइंटमेंट चाहिए"))
}

func TestClassifyClinicInfo(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, ClinicInfo, c.Classify("What are your working hours?"))
	require.Equal(t, ClinicInfo, c.Classify("Where is the clinic located?"))
	require.Equal(t, ClinicInfo, c.Classify("शुल्क किती?"))
}

func TestClassifyMedicalIsOutOfScope(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, OutOfScope, c.Classify("I have a headache, what should I do?"))
	require.Equal(t, OutOfScope, c.Classify("Which medicine should I take for fever?"))
	require.Equal(t, OutOfScope, c.Classify("मुझे बुखार है"))
}

// Medical keywords win even when appointment or clinic keywords co-occur.
func TestClassifyMedicalWinsOverAppointment(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, OutOfScope, c.Classify("I have a headache, can I book an appointment?"))
	require.Equal(t, OutOfScope, c.Classify("What are the consultation hours for diabetes treatment?"))
}

func TestClassifyUnrecognizedIsOutOfScope(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, OutOfScope, c.Classify("Tell me a joke"))
	require.Equal(t, OutOfScope, c.Classify(""))
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := NewClassifier()
	require.Equal(t, Appointment, c.Classify("BOOK AN APPOINTMENT"))
	require.Equal(t, OutOfScope, c.Classify("HEADACHE"))
}

// Every transcript maps to exactly one intent and never to Error.
func TestClassifyIsTotal(t *testing.T) {
	c := NewClassifier()
	inputs := []string{
		"book", "hours", "headache", "random words entirely", "", "12345", "नमस्ते",
	}
	for _, text := range inputs {
		it := c.Classify(text)
		require.Contains(t, []Intent{Appointment, ClinicInfo, OutOfScope}, it, "input %q", text)
	}
}

func TestSummary(t *testing.T) {
	require.Equal(t, "User called to book or manage an appointment.", Summary(Appointment))
	require.Equal(t, "User inquired about clinic information.", Summary(ClinicInfo))
	require.Equal(t, "User asked a question outside the scope of appointment scheduling.", Summary(OutOfScope))
	require.Equal(t, "User interaction recorded.", Summary(Error))
}
