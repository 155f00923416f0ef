package log

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(LoggerConfig{Level: InfoLevel, Output: &buf, Now: fixedClock})

	l.Debug("hidden")
	l.Info("evaluated", "input", 5, "answer", 11)

	assert.Equal(t, "[2024-03-01 12:30:00] INFO: evaluated input=5 answer=11\n", buf.String())
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(LoggerConfig{Level: DebugLevel, JSONOutput: true, Output: &buf, Now: fixedClock})

	l.Warn("overflow", "policy", "checked")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "overflow", entry["message"])
	assert.Equal(t, "checked", entry["policy"])
	assert.Equal(t, "2024-03-01 12:30:00", entry["timestamp"])
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LoggerConfig{Level: ErrorLevel, Output: &buf, Now: fixedClock})

	l.Warn("dropped")
	assert.Empty(t, buf.String())

	l.SetLevel(DebugLevel)
	l.Debug("kept")
	assert.Contains(t, buf.String(), "DEBUG: kept")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"", InfoLevel, false},
		{"WARNING", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMessage_OddArgs(t *testing.T) {
	assert.Equal(t, "msg extra k=v", formatMessage("msg", "extra", "k", "v"))
}
