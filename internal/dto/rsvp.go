package dto

import (
	"time"

	"github.com/jekabolt/wedding-rsvp/internal/entity"
	"github.com/jekabolt/wedding-rsvp/internal/form"
)

// RSVPData is the JSON shape of one record. Name, attending and submittedAt are null for
// records that were only looked up.
type RSVPData struct {
	Name           *string    `json:"name"`
	Email          string     `json:"email"`
	NumberOfGuests int        `json:"numberOfGuests"`
	Attending      *bool      `json:"attending"`
	SubmittedAt    *time.Time `json:"submittedAt"`
	LastCheckedAt  *time.Time `json:"lastCheckedAt"`
	Status         string     `json:"status"`
}

const (
	StatusAttending = "attending"
	StatusDeclined  = "declined"
	StatusChecked   = "checked"
)

func ConvertEntityRSVPToDto(r *entity.RSVP) RSVPData {
	d := RSVPData{
		Email:         r.Email,
		LastCheckedAt: r.LastCheckedAt,
		Status:        StatusChecked,
	}
	if !r.IsSubmission() {
		return d
	}
	name := r.Submission.Name
	attending := r.Submission.Attending
	submittedAt := r.Submission.SubmittedAt
	d.Name = &name
	d.Attending = &attending
	d.SubmittedAt = &submittedAt
	d.NumberOfGuests = r.Guests()
	d.Status = StatusDeclined
	if attending {
		d.Status = StatusAttending
	}
	return d
}

func ConvertEntityRSVPsToDto(rsvps []entity.RSVP) []RSVPData {
	out := make([]RSVPData, len(rsvps))
	for i := range rsvps {
		out[i] = ConvertEntityRSVPToDto(&rsvps[i])
	}
	return out
}

// SubmitRSVPRequest is the body of the submit endpoint.
type SubmitRSVPRequest struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	NumberOfGuests int        `json:"numberOfGuests"`
	Attending      bool       `json:"attending"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
}

func ConvertSubmitRequestToForm(req *SubmitRSVPRequest) (*form.SubmitRSVPRequest, time.Time) {
	var submittedAt time.Time
	if req.SubmittedAt != nil {
		submittedAt = *req.SubmittedAt
	}
	return &form.SubmitRSVPRequest{
		Name:           req.Name,
		Email:          req.Email,
		NumberOfGuests: req.NumberOfGuests,
		Attending:      req.Attending,
	}, submittedAt
}

type LookupRSVPRequest struct {
	Email string `json:"email"`
}

// Result is the tagged response envelope shared by every endpoint.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type LookupRSVPResponse struct {
	Result
	RSVP *RSVPData `json:"rsvp,omitempty"`
}

type ListRSVPsResponse struct {
	Result
	RSVPs   []RSVPData    `json:"rsvps"`
	Summary *RSVPsSummary `json:"summary,omitempty"`
}

// RSVPsSummary is what the admin page shows above its tables.
type RSVPsSummary struct {
	Submitted   int        `json:"submitted"`
	Attending   int        `json:"attending"`
	Declined    int        `json:"declined"`
	TotalGuests int        `json:"totalGuests"`
	CheckedOnly int        `json:"checkedOnly"`
	Submissions []RSVPData `json:"-"`
	Checks      []RSVPData `json:"-"`
}

// SummarizeRSVPs splits records into submissions and lookup-only checks, keeping their order.
func SummarizeRSVPs(rsvps []entity.RSVP) *RSVPsSummary {
	s := &RSVPsSummary{
		Submissions: []RSVPData{},
		Checks:      []RSVPData{},
	}
	for i := range rsvps {
		r := &rsvps[i]
		switch {
		case r.IsSubmission():
			s.Submissions = append(s.Submissions, ConvertEntityRSVPToDto(r))
			s.Submitted++
			if r.Submission.Attending {
				s.Attending++
				s.TotalGuests += r.Guests()
			} else {
				s.Declined++
			}
		case r.IsLookupOnly():
			s.Checks = append(s.Checks, ConvertEntityRSVPToDto(r))
		}
	}
	s.CheckedOnly = len(s.Checks)
	return s
}
