package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/magicmock/framework/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zap.DebugLevel},
		{"debug", zap.DebugLevel},
		{" warn ", zap.WarnLevel},
		{"ERROR", zap.ErrorLevel},
		{"INFO", zap.InfoLevel},
		{"", zap.InfoLevel},
		{"verbose", zap.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	l, err := logging.New("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))
}

func TestForTest_Level(t *testing.T) {
	t.Parallel()

	l := logging.ForTest(t, "DEBUG")
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
	l.Debug("written through t.Log")
}
