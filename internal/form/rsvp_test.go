package form

import (
	"testing"

	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("A@B.com"))
	assert.Equal(t, "a@b.com", NormalizeEmail("  a@B.COM \n"))
	assert.Equal(t, NormalizeEmail("Jo@X.com"), NormalizeEmail("jo@x.com"))
}

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last@sub.example.org", " padded@x.com "} {
		assert.NoError(t, ValidateEmail(email), email)
	}

	for _, email := range []string{"", "   ", "plain", "a@b", "@b.com", "a@.com ", "a b@c.com", "a@@b.com"} {
		err := ValidateEmail(email)
		require.Error(t, err, email)
		assert.ErrorIs(t, err, gerr.ErrValidation, email)
		assert.Equal(t, "Please enter a valid email address", err.Error(), email)
	}
}

func TestSubmitRSVPRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRSVPRequest
		wantErr string
	}{
		{
			name: "attending",
			req:  SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 2, Attending: true},
		},
		{
			name: "declining ignores guests",
			req:  SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 0, Attending: false},
		},
		{
			name:    "missing name",
			req:     SubmitRSVPRequest{Email: "jo@x.com", NumberOfGuests: 1, Attending: true},
			wantErr: "Name and email are required",
		},
		{
			name:    "blank name",
			req:     SubmitRSVPRequest{Name: "   ", Email: "jo@x.com", NumberOfGuests: 1, Attending: true},
			wantErr: "Name and email are required",
		},
		{
			name:    "missing email",
			req:     SubmitRSVPRequest{Name: "Jo", NumberOfGuests: 1, Attending: true},
			wantErr: "Name and email are required",
		},
		{
			name:    "malformed email",
			req:     SubmitRSVPRequest{Name: "Jo", Email: "jo-at-x", NumberOfGuests: 1, Attending: true},
			wantErr: "Please enter a valid email address",
		},
		{
			name:    "no guests while attending",
			req:     SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", Attending: true},
			wantErr: "Please choose between 1 and 6 guests",
		},
		{
			name:    "too many guests",
			req:     SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 7, Attending: true},
			wantErr: "Please choose between 1 and 6 guests",
		},
		{
			name:    "negative guests",
			req:     SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", NumberOfGuests: -1, Attending: true},
			wantErr: "Please choose between 1 and 6 guests",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, gerr.ErrValidation)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
