package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	is := assert.New(t)

	is.Equal(LevelDebug, parseLevel("debug"))
	is.Equal(LevelWarn, parseLevel("warn"))
	is.Equal(LevelWarn, parseLevel("warning"))
	is.Equal(LevelError, parseLevel("ERROR"))
	is.Equal(LevelInfo, parseLevel("bogus"))
	is.Equal(LevelInfo, parseLevel(""))
}

func TestLogger_SuppressesBelowConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("warn")
	l.out = log.New(&buf, "", 0)
	assert.NotPanics(t, func() {
		l.Debugf("should not panic: %d", 1)
		l.Infof("should not panic: %d", 2)
		l.Warnf("should not panic: %d", 3)
		l.Errorf("should not panic: %d", 4)
	})
	assert.NotContains(t, buf.String(), "DEBUG")
	assert.NotContains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "WARN | should not panic: 3")
	assert.Contains(t, buf.String(), "ERROR | should not panic: 4")
}
