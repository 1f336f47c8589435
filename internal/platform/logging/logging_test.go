package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		for _, format := range []string{"json", "console", ""} {
			log, err := New(tc.level, format)
			if err != nil {
				t.Fatalf("new(%q, %q): %v", tc.level, format, err)
			}
			if !log.Core().Enabled(tc.want) {
				t.Fatalf("level %q: expected %s enabled", tc.level, tc.want)
			}
			if tc.want > zapcore.DebugLevel && log.Core().Enabled(tc.want-1) {
				t.Fatalf("level %q: expected %s disabled", tc.level, tc.want-1)
			}
		}
	}
}
