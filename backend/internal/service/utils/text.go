package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict policy: no tags at all
var policy = bluemonday.StrictPolicy()

// CleanText strips markup from user supplied text. Entities are decoded back
// so plain text such as "Tom & Jerry" survives unchanged.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}

// CleanTextPtr is CleanText for optional fields
func CleanTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := CleanText(*s)
	return &cleaned
}
