package form

import (
	"errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
)

// ValidateStruct applies the field rules one by one and reports the first violation
// as a *gerr.ValidationError, so the guest sees a single message.
func ValidateStruct(structPtr interface{}, rules ...*validation.FieldRules) error {
	for _, rule := range rules {
		err := validation.ValidateStruct(structPtr, rule)
		if err == nil {
			continue
		}
		var ve validation.Errors
		if errors.As(err, &ve) {
			for _, fieldErr := range ve {
				return gerr.NewValidationError(formatErrMsg(fieldErr.Error()))
			}
		}
		// internal errors come from misconfigured rules, not from input
		return err
	}
	return nil
}

// Validate checks a single value and converts the failure into a *gerr.ValidationError.
func Validate(value interface{}, rules ...validation.Rule) error {
	err := validation.Validate(value, rules...)
	if err == nil {
		return nil
	}
	var vErr validation.Error
	if errors.As(err, &vErr) {
		return gerr.NewValidationError(formatErrMsg(vErr.Error()))
	}
	return err
}

func formatErrMsg(s string) string {
	return ucfirst(strings.TrimSpace(s))
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
