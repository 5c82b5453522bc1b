package clock24

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    string
	}{
		{"Midnight", 0, "00:00"},
		{"Morning", 6*60 + 30, "06:30"},
		{"Last minute", 23*60 + 59, "23:59"},
		{"Wraps past midnight", 24*60 + 15, "00:15"},
		{"Negative wraps backwards", -60, "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.minutes))
		})
	}
}

func TestFormatFraction(t *testing.T) {
	t.Run("Half of phase span", func(t *testing.T) {
		assert.Equal(t, "07:00", FormatFraction(6*60, 120, 0.5))
	})

	t.Run("Progress clamped above", func(t *testing.T) {
		assert.Equal(t, "08:00", FormatFraction(6*60, 120, 1.7))
	})

	t.Run("Progress clamped below", func(t *testing.T) {
		assert.Equal(t, "06:00", FormatFraction(6*60, 120, -0.2))
	})
}
