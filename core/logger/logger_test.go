package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"Debug Console", "debug", "console"},
		{"Info JSON", "info", "json"},
		{"Default Format", "info", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&Config{Level: tt.level, Format: tt.format})
			assert.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}
