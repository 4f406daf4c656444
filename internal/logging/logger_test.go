package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentnest247/Talentnest-sub001/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNewWithOutput_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LoggingConfig{Level: "debug", Format: "json"}, &buf)

	logger.WithField("profile_id", 7).Debug("decision committed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "decision committed", entry["msg"])
	assert.Equal(t, float64(7), entry["profile_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewWithOutput_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(config.LoggingConfig{Level: "warn"}, &buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
