// Package clinic loads the static clinic description served by the
// clinic-info endpoint and folded into the persona prompt.
package clinic

import (
	"encoding/json"
	"fmt"
	"os"
)

type WorkingHours struct {
	MondayFriday string `json:"monday_friday"`
	Saturday     string `json:"saturday"`
	Sunday       string `json:"sunday"`
}

type Config struct {
	ClinicName      string       `json:"clinic_name"`
	DoctorName      string       `json:"doctor_name"`
	Location        string       `json:"location"`
	ConsultationFee string       `json:"consultation_fee"`
	WorkingHours    WorkingHours `json:"working_hours"`
}

// Load reads the clinic configuration from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clinic config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse clinic config: %w", err)
	}
	return &cfg, nil
}

// PromptContext renders the clinic details as a block appended to the
// generator's system instructions.
func (c *Config) PromptContext() string {
	return fmt.Sprintf(`
CLINIC INFORMATION:
- Clinic Name: %s
- Doctor: %s
- Location: %s
- Consultation Fee: %s
- Working Hours:
  - Monday-Friday: %s
  - Saturday: %s
  - Sunday: %s
`,
		orNA(c.ClinicName), orNA(c.DoctorName), orNA(c.Location), orNA(c.ConsultationFee),
		orNA(c.WorkingHours.MondayFriday), orNA(c.WorkingHours.Saturday), orNA(c.WorkingHours.Sunday))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
