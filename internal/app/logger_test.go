//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logPretty string
		want      zerolog.Level
	}{
		{name: "defaults to info", want: zerolog.InfoLevel},
		{name: "debug", logLevel: "debug", want: zerolog.DebugLevel},
		{name: "pretty output", logLevel: "warn", logPretty: "true", want: zerolog.WarnLevel},
		{name: "error", logLevel: "error", logPretty: "false", want: zerolog.ErrorLevel},
	}

	previous := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(previous) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("LOG_PRETTY", tt.logPretty)

			InitializeLogger()

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
