package clinic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"clinic_name": "Shree Clinic",
		"doctor_name": "Dr. Sharma",
		"location": "Pune",
		"consultation_fee": "Rs. 500",
		"working_hours": {
			"monday_friday": "9:00 AM - 8:00 PM",
			"saturday": "9:00 AM - 2:00 PM",
			"sunday": "Closed"
		}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Shree Clinic", cfg.ClinicName)
	require.Equal(t, "Closed", cfg.WorkingHours.Sunday)

	prompt := cfg.PromptContext()
	require.Contains(t, prompt, "Shree Clinic")
	require.Contains(t, prompt, "Dr. Sharma")
	require.Contains(t, prompt, "9:00 AM - 2:00 PM")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestPromptContextFillsNA(t *testing.T) {
	cfg := &Config{}
	require.Contains(t, cfg.PromptContext(), "N/A")
}
