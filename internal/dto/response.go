package dto

import (
	"net/http"

	"github.com/go-chi/render"
	gerr "github.com/jekabolt/wedding-rsvp/internal/errors"
)

// ErrResponse renders any error as {success:false, error} with the matching status code.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`
	Result
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrRender(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: gerr.HTTPStatus(err),
		Result: Result{
			Success: false,
			Error:   gerr.UserMessage(err),
		},
	}
}

// ErrInvalidRequest is returned when the body can't be decoded.
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Result: Result{
			Success: false,
			Error:   "Invalid request",
		},
	}
}

func (res *Result) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (res *LookupRSVPResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (res *ListRSVPsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (req *SubmitRSVPRequest) Bind(r *http.Request) error {
	return nil
}

func (req *LookupRSVPRequest) Bind(r *http.Request) error {
	return nil
}
