// Package lang detects which of the supported languages a transcript is in.
package lang

import (
	"strings"
	"unicode"
)

// Tag is one of the closed set of languages the receptionist supports.
type Tag string

const (
	English Tag = "English"
	Hindi   Tag = "Hindi"
	Marathi Tag = "Marathi"
)

// Code returns the ISO 639-1 code used by the synthesis collaborator.
func (t Tag) Code() string {
	switch t {
	case Hindi:
		return "hi"
	case Marathi:
		return "mr"
	default:
		return "en"
	}
}

// Detector is a keyword-count heuristic, not a language model. Both Devanagari
// languages share a script, so the split between Hindi and Marathi comes down
// to counting a handful of high-frequency function words.
type Detector struct {
	MarathiKeywords []string
	HindiKeywords   []string
}

func NewDetector() *Detector {
	return &Detector{
		MarathiKeywords: []string{"नमस्कार", "काय", "आहे", "मला", "तुम्ही"},
		HindiKeywords:   []string{"नमस्ते", "क्या", "है", "मुझे", "आप"},
	}
}

// Detect maps text to a Tag. Text without Devanagari characters is English.
// Otherwise Marathi wins only with a strictly higher keyword count; ties,
// including zero-zero, resolve to Hindi.
func (d *Detector) Detect(text string) Tag {
	if !hasDevanagari(text) {
		return English
	}

	lower := strings.ToLower(text)
	marathi := countMatches(lower, d.MarathiKeywords)
	hindi := countMatches(lower, d.HindiKeywords)

	if marathi > hindi {
		return Marathi
	}
	return Hindi
}

// Detect runs the default detector.
func Detect(text string) Tag {
	return defaultDetector.Detect(text)
}

var defaultDetector = NewDetector()

func hasDevanagari(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	return false
}

func countMatches(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
