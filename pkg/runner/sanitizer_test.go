package runner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/pkg/runner"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := 64

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.SanitizeInput(strings.Repeat("a", tt.inputSize), limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, runner.ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "name Ada Lovelace", "name Ada Lovelace"},
		{"Tab", "message hi\tthere", "message hi there"},
		{"Line Ending", "submit\r\n", "submit"},
		{"ANSI Code", "\x1b[31mRed\x1b[0m", "[31mRed[0m"},
		{"Null Byte", "Null\x00Byte", "NullByte"},
		{"Bell", "Ding\x07", "Ding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runner.SanitizeInput(tt.input, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMaxInputSize_EnvOverride(t *testing.T) {
	assert.Equal(t, runner.DefaultMaxInputSize, runner.MaxInputSize())

	t.Setenv(runner.EnvMaxInputSize, "10")
	assert.Equal(t, 10, runner.MaxInputSize())

	t.Setenv(runner.EnvMaxInputSize, "lots")
	assert.Equal(t, runner.DefaultMaxInputSize, runner.MaxInputSize())
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := runner.SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98", 0)
	assert.ErrorIs(t, err, runner.ErrInvalidUTF8)
}
