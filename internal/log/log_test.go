// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{
		Writer: &buf,
		Now:    func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	l := &log.Logger{Handler: h, Level: log.DebugLevel}

	l.WithFields(log.Fields{"rows": 2, "cols": 3}).Info("getting cached inverse")
	l.Debug("plain")

	assert.Equal(t,
		"2025-01-02 03:04:05 I getting cached inverse cols=3 rows=2\n"+
			"2025-01-02 03:04:05 D plain\n",
		buf.String())
}

func TestInitLogger_Level(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"ERROR", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvLevel, tt.env)
			var buf bytes.Buffer
			InitLogger(&buf)

			logger, ok := log.Log.(*log.Logger)
			if assert.True(t, ok) {
				assert.Equal(t, tt.want, logger.Level)
				assert.IsType(t, &CustomHandler{}, logger.Handler)
			}
		})
	}
}
