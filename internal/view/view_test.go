package view

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/dto"
	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/jekabolt/wedding-rsvp/internal/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSite = Site{
	Title:     "A & B",
	Couple:    "A & B",
	Date:      "March 12, 2026",
	Intro:     "We'd love to have you there.",
	Ceremony:  Venue{Title: "Wedding Ceremony", Date: "March 12, 2026", Place: "Garden", Address: "Somewhere"},
	RespondBy: "February 1, 2026",
	Footer:    "We look forward to celebrating with you",
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(testSite)
	require.NoError(t, err)
	return r
}

func TestRenderIndex_Steps(t *testing.T) {
	r := newTestRenderer(t)
	at := time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)
	rec := &entity.RSVP{
		Kind:       entity.RSVPKindSubmitted,
		Email:      "jo@x.com",
		Submission: &entity.Submission{Name: "Jo <b>", NumberOfGuests: 2, Attending: true, SubmittedAt: at},
	}

	tests := []struct {
		name  string
		state flow.State
		want  []string
	}{
		{"lookup", flow.State{Step: flow.StepLookup, Error: "Please enter a valid email address"}, []string{`action="/rsvp/lookup#rsvp"`, "Please enter a valid email address", "Kindly respond by February 1, 2026"}},
		{"view", flow.State{Step: flow.StepView, Record: rec}, []string{"Jo &lt;b&gt;", "Attending, 2 Guests", `action="/rsvp/edit#rsvp"`}},
		{"form", flow.State{Step: flow.StepForm, Mode: flow.ModeEdit, Fields: flow.FieldsFromRSVP(rec)}, []string{`value="edit"`, `<option value="2" selected>2 Guests</option>`, "Update"}},
		{"success", flow.State{Step: flow.StepSuccess, Message: flow.MsgDeclining}, []string{"Thank you for letting us know.", "Submit another response"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, r.RenderIndex(buf, tt.state))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.Contains(t, buf.String(), "Wedding Ceremony")
		})
	}
}

func TestRenderIndex_DeclineHidesGuests(t *testing.T) {
	r := newTestRenderer(t)
	buf := &bytes.Buffer{}
	require.NoError(t, r.RenderIndex(buf, flow.State{Step: flow.StepForm, Mode: flow.ModeNew, Fields: flow.Fields{Attending: false, NumberOfGuests: 1}}))
	assert.Contains(t, buf.String(), `class="guests is-hidden"`)
}

func TestRenderAdmin(t *testing.T) {
	r := newTestRenderer(t)
	checked := time.Date(2026, time.January, 6, 9, 30, 0, 0, time.UTC)
	summary := dto.SummarizeRSVPs([]entity.RSVP{
		{Kind: entity.RSVPKindSubmitted, Email: "a@x.com", Submission: &entity.Submission{Name: "Ann", NumberOfGuests: 3, Attending: true, SubmittedAt: checked}},
		{Kind: entity.RSVPKindSubmitted, Email: "b@x.com", Submission: &entity.Submission{Name: "Bob", Attending: false, SubmittedAt: checked}},
		{Kind: entity.RSVPKindPlaceholder, Email: "c@x.com", LastCheckedAt: &checked},
	})

	buf := &bytes.Buffer{}
	require.NoError(t, r.RenderAdmin(buf, summary, ""))
	out := buf.String()
	assert.Contains(t, out, "<title>RSVP Management</title>")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "1 person has checked but not submitted RSVP")
	assert.Contains(t, out, "Jan 6, 2026, 09:30 AM")
	assert.Contains(t, out, "Checked But Not Submitted")

	buf.Reset()
	require.NoError(t, r.RenderAdmin(buf, nil, "Failed to fetch RSVPs"))
	assert.Contains(t, buf.String(), "Failed to fetch RSVPs")
	assert.NotContains(t, buf.String(), "Total RSVPs")
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/site.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".rsvp-box")
}
