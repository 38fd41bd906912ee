package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{
			name:     "should be disabled when unset",
			value:    "",
			expected: false,
		},
		{
			name:     "should be enabled for any non-empty value",
			value:    "1",
			expected: true,
		},
		{
			name:     "should be enabled for arbitrary text",
			value:    "yes please",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Setenv("DLOG_DEBUG", "")
			} else {
				t.Setenv("DLOG_DEBUG", tt.value)
			}

			assert.Equal(t, tt.expected, DebugEnabled())
		})
	}
}

func TestDebugf_SilentWhenDisabled(t *testing.T) {
	t.Setenv("DLOG_DEBUG", "")

	// Must not panic or print; there is no output channel to assert on
	// beyond the absence of a crash.
	Debugf("value=%d\n", 42)
	Debugln("quiet")
}
