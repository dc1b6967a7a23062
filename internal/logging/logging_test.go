package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		SetupLogger(tt.verbosity, &buf, filepath.Join(t.TempDir(), "test.log"))
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerWritesConsoleAndFile(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "nested", "envpath.log")
	SetupLogger(1, &buf, logFile)

	log.Info().Str("scope", "user").Msg("hello relay")

	assert.Contains(t, buf.String(), "hello relay")
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"scope":"user"`), "file log: %s", data)
}

func TestGetLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := GetLogger("relay")
	logger.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"relay"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "write")
	assert.Contains(t, buf.String(), "Operation started")
	assert.NotContains(t, buf.String(), "Operation completed")
	done()
	assert.Contains(t, buf.String(), `"operation":"write","duration":`)
}
