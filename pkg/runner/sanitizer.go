package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB, well above any sensible contact message line.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "FOLIO_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans one console line before it reaches a form field:
// it rejects lines over limit bytes or with invalid UTF-8, turns tabs into
// spaces and strips every other control character (ANSI escapes, NUL, BEL,
// line endings). A non-positive limit means DefaultMaxInputSize.
func SanitizeInput(input string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\t':
			b.WriteByte(' ')
		case !unicode.IsControl(r):
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// MaxInputSize returns the line limit from EnvMaxInputSize, or the default.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
