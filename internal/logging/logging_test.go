package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		require.Equal(t, tc.want, New(&buf, tc.level).GetLevel(), tc.level)
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")
	log.Debug().Msg("hidden")
	log.Info().Str("turn", "11-15").Msg("turn committed")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "turn committed")
	require.Contains(t, out, "turn=11-15")
	require.NotContains(t, out, "\x1b[", "no color codes for non-terminals")
}
