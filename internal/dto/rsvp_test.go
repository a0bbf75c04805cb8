package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2026, time.April, 4, 12, 0, 0, 0, time.UTC)

func fixtures() []entity.RSVP {
	return []entity.RSVP{
		{Kind: entity.RSVPKindSubmitted, Email: "a@x.com", Submission: &entity.Submission{Name: "A", NumberOfGuests: 3, Attending: true, SubmittedAt: ts}},
		{Kind: entity.RSVPKindSubmitted, Email: "b@x.com", Submission: &entity.Submission{Name: "B", NumberOfGuests: 4, Attending: false, SubmittedAt: ts}},
		{Kind: entity.RSVPKindSubmitted, Email: "c@x.com", Submission: &entity.Submission{Name: "C", NumberOfGuests: 2, Attending: true, SubmittedAt: ts}},
		{Kind: entity.RSVPKindPlaceholder, Email: "d@x.com", LastCheckedAt: &ts},
		{Kind: entity.RSVPKindPlaceholder, Email: "e@x.com"},
	}
}

func TestSummarizeRSVPs(t *testing.T) {
	s := SummarizeRSVPs(fixtures())
	assert.Equal(t, 3, s.Submitted)
	assert.Equal(t, 2, s.Attending)
	assert.Equal(t, 1, s.Declined)
	assert.Equal(t, 5, s.TotalGuests)
	assert.Equal(t, 1, s.CheckedOnly)
	require.Len(t, s.Checks, 1)
	assert.Equal(t, "d@x.com", s.Checks[0].Email)
	assert.Equal(t, "b@x.com", s.Submissions[1].Email)
}

func TestSummarizeRSVPs_Empty(t *testing.T) {
	s := SummarizeRSVPs(nil)
	assert.Zero(t, s.Submitted)
	assert.Empty(t, s.Submissions)
	assert.Empty(t, s.Checks)
}

func TestConvertEntityRSVPToDto_JSON(t *testing.T) {
	rs := fixtures()

	bs, err := json.Marshal(ConvertEntityRSVPToDto(&rs[1]))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "B",
		"email": "b@x.com",
		"numberOfGuests": 0,
		"attending": false,
		"submittedAt": "2026-04-04T12:00:00Z",
		"lastCheckedAt": null,
		"status": "declined"
	}`, string(bs))

	bs, err = json.Marshal(ConvertEntityRSVPToDto(&rs[3]))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": null,
		"email": "d@x.com",
		"numberOfGuests": 0,
		"attending": null,
		"submittedAt": null,
		"lastCheckedAt": "2026-04-04T12:00:00Z",
		"status": "checked"
	}`, string(bs))
}

func TestConvertSubmitRequestToForm(t *testing.T) {
	f, at := ConvertSubmitRequestToForm(&SubmitRSVPRequest{Name: "Jo", Email: "jo@x.com", NumberOfGuests: 2, Attending: true})
	assert.True(t, at.IsZero())
	assert.Equal(t, "Jo", f.Name)
	assert.Equal(t, 2, f.NumberOfGuests)

	_, at = ConvertSubmitRequestToForm(&SubmitRSVPRequest{SubmittedAt: &ts})
	assert.Equal(t, ts, at)
}
