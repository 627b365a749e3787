package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/cerebro/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.Level
	}{
		{"debug", logger.DEBUG},
		{"INFO", logger.INFO},
		{"warning", logger.WARN},
		{"Error", logger.ERROR},
		{"nonsense", logger.INFO},
		{"", logger.INFO},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in))
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSortedAndInherited(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithPrefix("svc").
		WithField("zeta", 1).
		WithFields(map[string]any{"alpha": "a"})

	log.Info("hello")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[svc]")
	assert.True(t, strings.HasSuffix(line, "hello alpha=a zeta=1"), line)
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))

	custom := logger.New()
	ctx := logger.NewContext(context.Background(), custom)
	assert.Same(t, custom, logger.FromContext(ctx))
}
