// Package validate provides the account id and email shape checks used by the API.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Struct tags registered by New.
const (
	TagAccountID  = "account_id"
	TagLooseEmail = "loose_email"
)

var (
	accountIDPattern = regexp.MustCompile(`^\d{5,10}$`)

	// emailPattern only checks local@domain.tld shape. It accepts many strings
	// RFC 5322 would reject, e.g. "a@b.c" or "x@y..z".
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// AccountID reports whether id is 5 to 10 ASCII digits.
func AccountID(id string) bool {
	return id != "" && accountIDPattern.MatchString(id)
}

// Email reports whether email has the minimal local@domain.tld shape.
func Email(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// New returns a validator with the account_id and loose_email tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(TagAccountID, func(fl validator.FieldLevel) bool {
		return AccountID(fl.Field().String())
	})
	_ = v.RegisterValidation(TagLooseEmail, func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})

	return v
}

// FirstFailedTag returns the tag of the first failing field in err, or "" if err
// is not a validation error. Fields are reported in struct declaration order.
func FirstFailedTag(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return ""
	}
	return verrs[0].Tag()
}
