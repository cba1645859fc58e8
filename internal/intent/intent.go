// Package intent classifies transcripts into the receptionist's closed intent set.
package intent

import "strings"

// Intent is the classification of a single user turn. Classification is total:
// every transcript maps to exactly one value.
type Intent string

const (
	Appointment Intent = "APPOINTMENT"
	ClinicInfo  Intent = "CLINIC_INFO"
	OutOfScope  Intent = "OUT_OF_SCOPE"

	// Error is never produced by the classifier. It tags interaction records
	// whose generation step failed and was replaced by the fallback message.
	Error Intent = "ERROR"
)

// Classifier matches fixed keyword lists against the lowercased transcript.
// The lists are ordered by priority: any medical term makes the turn
// out-of-scope no matter what else co-occurs with it.
type Classifier struct {
	MedicalKeywords     []string
	AppointmentKeywords []string
	ClinicKeywords      []string
}

func NewClassifier() *Classifier {
	return &Classifier{
		MedicalKeywords: []string{
			"symptom", "pain", "hurt", "ache", "sick", "ill", "disease",
			"medicine", "medication", "drug", "pill", "tablet",
			"diagnosis", "treatment", "cure", "remedy", "heal",
			"fever", "cough", "cold", "headache", "stomach",
			"blood", "pressure", "sugar", "diabetes", "cancer",
			"infection", "virus", "bacteria",
			"दवा", "बीमारी", "लक्षण", "दर्द", "बुखार", "इलाज",
			"औषध", "आजार", "वेदना", "ताप", "उपचार",
		},
		AppointmentKeywords: []string{
			"appointment", "book", "schedule", "reschedule", "cancel",
			"visit", "meet", "see doctor", "consultation",
			"अपॉइंटमेंट", "बुक", "मिलना", "डॉक्टर",
			"भेट", "वेळ",
		},
		ClinicKeywords: []string{
			"hours", "timing", "time", "location", "address", "where",
			"fee", "cost", "charge", "price", "open", "closed",
			"समय", "पता", "फीस", "खुला",
			"वेळ", "पत्ता", "शुल्क",
		},
	}
}

// Classify evaluates the keyword lists in strict priority order.
// Medical content always wins, absence of any match is out-of-scope.
func (c *Classifier) Classify(text string) Intent {
	lower := strings.ToLower(text)

	if containsAny(lower, c.MedicalKeywords) {
		return OutOfScope
	}
	if containsAny(lower, c.AppointmentKeywords) {
		return Appointment
	}
	if containsAny(lower, c.ClinicKeywords) {
		return ClinicInfo
	}
	return OutOfScope
}

// Summary returns the one-sentence description stored with each interaction.
func Summary(it Intent) string {
	switch it {
	case Appointment:
		return "User called to book or manage an appointment."
	case ClinicInfo:
		return "User inquired about clinic information."
	case OutOfScope:
		return "User asked a question outside the scope of appointment scheduling."
	default:
		return "User interaction recorded."
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
