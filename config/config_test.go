package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		GoogleCredentials: `{"type":"service_account"}`,
		CalendarID:        "primary",
		GeminiAPIKey:      "key",
		BusinessStartHour: 9,
		BusinessEndHour:   17,
		SessionBackend:    "memory",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "missing credentials and calendar",
			mutate:  func(c *Config) { c.GoogleCredentials = ""; c.CalendarID = "" },
			wantErr: "GOOGLE_APPLICATION_CREDENTIALS, CALENDAR_ID",
		},
		{
			name:    "missing gemini key",
			mutate:  func(c *Config) { c.GeminiAPIKey = "" },
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:    "hours out of range",
			mutate:  func(c *Config) { c.BusinessEndHour = 25 },
			wantErr: "business hours",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.SessionBackend = "mongo" },
			wantErr: "SESSION_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
