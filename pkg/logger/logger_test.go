package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_StructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info().Str("user_id", "u-1").Msg("transfer submitted")

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output), "logger output should be valid JSON")

	assert.Equal(t, "transfer submitted", output["message"])
	assert.Equal(t, "u-1", output["user_id"])
	assert.Equal(t, "info", output["level"])
	assert.Contains(t, output, "time")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
		infoShown  bool
	}{
		{"debug", true, true},
		{"DEBUG", true, true},
		{"info", false, true},
		{"error", false, false},
		{"invalid", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var debugBuf, infoBuf bytes.Buffer
			debugLog := NewWithWriter(tt.level, &debugBuf)
			debugLog.Debug().Msg("d")
			infoLog := NewWithWriter(tt.level, &infoBuf)
			infoLog.Info().Msg("i")

			assert.Equal(t, tt.debugShown, debugBuf.Len() > 0)
			assert.Equal(t, tt.infoShown, infoBuf.Len() > 0)
		})
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log := Component(NewWithWriter("info", &buf), "kyc_workflow")

	log.Info().Msg("submitted")

	var output map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "kyc_workflow", output["component"])
}

func TestNew_PrettyMode(t *testing.T) {
	log := New("info", true)
	log.Info().Msg("pretty mode test")
}
