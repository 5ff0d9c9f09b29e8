package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ReservedUsername collides with the /users/me route
const ReservedUsername = "me"

func ValidUsername(s string) bool {
	return usernameRe.MatchString(s) && !strings.EqualFold(s, ReservedUsername)
}

func ValidSlug(s string) bool {
	return slugRe.MatchString(s)
}

// RegisterValidations adds the tags used by request DTOs:
// username, slug, notblank and notfuture (a year no later than the current one).
func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	})
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return ValidSlug(fl.Field().String())
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})
}
