package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, err := New(Options{Format: "xml"})
	assert.Error(t, err)
}

func TestWithComponent_JSONFields(t *testing.T) {
	log, err := New(Options{Level: "debug"})
	require.NoError(t, err)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.WithComponent("quote").WithField("venue", "v").Debug("priced")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "quote", line["component"])
	assert.Equal(t, "v", line["venue"])
	assert.Equal(t, "priced", line["message"])
	assert.Equal(t, "debug", line["level"])
	assert.Contains(t, line, "timestamp")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dopc.log")
	log, err := New(Options{Output: path, MaxAgeDays: 1})
	require.NoError(t, err)

	log.WithFields(Fields{"k": "v"}).Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() { log.WithComponent("x").Error("dropped") })
}
