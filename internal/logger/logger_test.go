package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.pagelog/internal/logger"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logger.Level
		ok   bool
	}{
		{"debug", logger.DEBUG, true},
		{"info", logger.INFO, true},
		{"", logger.INFO, true},
		{"WARN", logger.WARN, true},
		{"warning", logger.WARN, true},
		{"error", logger.ERROR, true},
		{"verbose", logger.INFO, false},
	}
	for _, tc := range cases {
		got, err := logger.ParseLevel(tc.in)
		assert.Equal(t, tc.want, got, "level %q", tc.in)
		if tc.ok {
			assert.NoError(t, err, "level %q", tc.in)
		} else {
			assert.Error(t, err, "level %q", tc.in)
		}
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.WARN)

	log.Debugf("hidden %d", 1)
	log.Infof("hidden %d", 2)
	log.Warnf("shown %d", 3)
	log.Errorf("shown %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[warn] shown 3")
	assert.Contains(t, out, "[error] shown 4")
}

func TestLoggerDebugPassesEverything(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.DEBUG)

	log.Debugf("first")
	log.Infof("second")

	out := buf.String()
	assert.Contains(t, out, "[debug] first")
	assert.Contains(t, out, "[info] second")
}
