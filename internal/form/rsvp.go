package form

import (
	"regexp"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	msgInvalidEmail     = "Please enter a valid email address"
	msgNameAndEmail     = "Name and email are required"
	msgGuestsOutOfRange = "Please choose between 1 and 6 guests"
)

// emailRegex only checks the local@domain.tld shape.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lower-cases an email so it can be used as the record key.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// ValidateEmail fails when the email is absent or not shaped like local@domain.tld.
func ValidateEmail(email string) error {
	return Validate(strings.TrimSpace(email),
		v.Required.Error(msgInvalidEmail),
		v.Match(emailRegex).Error(msgInvalidEmail),
	)
}

// SubmitRSVPRequest is a guest's response before normalization.
type SubmitRSVPRequest struct {
	Name           string
	Email          string
	NumberOfGuests int
	Attending      bool
}

func (r *SubmitRSVPRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return ValidateStruct(r,
		v.Field(&r.Name, v.Required.Error(msgNameAndEmail)),
		v.Field(&r.Email, v.Required.Error(msgNameAndEmail)),
		v.Field(&r.Email, v.Match(emailRegex).Error(msgInvalidEmail)),
		v.Field(&r.NumberOfGuests, v.When(r.Attending,
			v.Required.Error(msgGuestsOutOfRange),
			v.Min(1).Error(msgGuestsOutOfRange),
			v.Max(entity.MaxGuests).Error(msgGuestsOutOfRange),
		)),
	)
}
