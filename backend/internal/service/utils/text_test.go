package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "A fine film", "A fine film"},
		{"ampersand kept", "Tom & Jerry", "Tom & Jerry"},
		{"tags stripped", "<b>bold</b> claim", "bold claim"},
		{"script removed", `<script>alert(1)</script>ok`, "ok"},
		{"trimmed", "  spaced  ", "spaced"},
		{"only markup", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestCleanTextPtr(t *testing.T) {
	assert.Nil(t, CleanTextPtr(nil))
	s := " <i>x</i> "
	assert.Equal(t, "x", *CleanTextPtr(&s))
}
