package agent

import (
	"strings"

	"github.com/rog05/voice-agent/internal/intent"
	"github.com/rog05/voice-agent/internal/lang"
)

// Validator re-checks generated replies before they reach synthesis. It is a
// second failure-closed gate, independent of the pre-generation classifier,
// and deliberately keeps its own smaller term list.
type Validator struct {
	MedicalTerms []string
}

func NewValidator() *Validator {
	return &Validator{
		MedicalTerms: []string{
			"diagnos", "symptom", "medicine", "medication", "treatment",
			"disease", "illness", "condition", "prescription",
		},
	}
}

// Validate returns the text safe to speak. Out-of-scope turns and replies
// containing medical terms get the whole fallback message for the language;
// the text is never partially edited.
func (v *Validator) Validate(text string, it intent.Intent, language lang.Tag) string {
	if it == intent.OutOfScope {
		return Fallback(language)
	}

	lower := strings.ToLower(text)
	for _, term := range v.MedicalTerms {
		if strings.Contains(lower, term) {
			return Fallback(language)
		}
	}
	return text
}
