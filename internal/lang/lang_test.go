package lang

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectLatinTextIsEnglish(t *testing.T) {
	require.Equal(t, English, Detect("Hello, how are you?"))
	require.Equal(t, English, Detect("I want to book an appointment"))
}

func TestDetectHindi(t *testing.T) {
	require.Equal(t, Hindi, Detect("नमस्ते, आप कैसे हैं?"))
}

func TestDetectMarathi(t *testing.T) {
	require.Equal(t, Marathi, Detect("नमस्कार, तुम्ही कसे आहात?"))
}

func TestDetectTieBreaksToHindi(t *testing.T) {
	// Devanagari text matching no keyword at all still counts as a 0-0 tie.
	require.Equal(t, Hindi, Detect("डॉक्टर"))
}

func TestDetectEmptyTextIsEnglish(t *testing.T) {
	require.Equal(t, English, Detect(""))
}

func TestDetectIsIdempotent(t *testing.T) {
	inputs := []string{
		"What are your working hours?",
		"नमस्ते, मुझे अपॉइंटमेंट चाहिए",
		"नमस्कार, मला भेट हवी आहे",
	}
	for _, text := range inputs {
		first := Detect(text)
		require.Equal(t, first, Detect(text), "detection must be a pure function of text: %q", text)
	}
}

func TestTagCode(t *testing.T) {
	require.Equal(t, "en", English.Code())
	require.Equal(t, "hi", Hindi.Code())
	require.Equal(t, "mr", Marathi.Code())
	require.Equal(t, "en", Tag("Unknown").Code())
}
