package middleware

import (
	"bytes"
	"testing"

	applog "github.com/darkkaiser/job-dispatcher/pkg/log"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() (Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(applog.DebugLevel)

	return Logger{Logger: l}, &buf
}

func TestLogger_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    applog.Level
		expected log.Lvl
	}{
		{applog.TraceLevel, log.DEBUG},
		{applog.DebugLevel, log.DEBUG},
		{applog.InfoLevel, log.INFO},
		{applog.WarnLevel, log.WARN},
		{applog.ErrorLevel, log.ERROR},
		{applog.FatalLevel, log.OFF},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()

			l, _ := newTestLogger()
			l.Logger.SetLevel(tt.level)
			assert.Equal(t, tt.expected, l.Level())
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	l, _ := newTestLogger()

	l.SetLevel(log.WARN)
	assert.Equal(t, applog.WarnLevel, l.Logger.GetLevel())

	// OFF는 무시된다.
	l.SetLevel(log.OFF)
	assert.Equal(t, applog.WarnLevel, l.Logger.GetLevel())
}

func TestLogger_Output(t *testing.T) {
	t.Parallel()

	l, buf := newTestLogger()
	assert.Same(t, buf, l.Output())

	l.Infoj(log.JSON{"worker_id": "worker-1"})
	l.Warnf("busy: %s", "job-1")

	out := buf.String()
	assert.Contains(t, out, `"worker_id":"worker-1"`)
	assert.Contains(t, out, "busy: job-1")
	assert.Empty(t, l.Prefix())
}
