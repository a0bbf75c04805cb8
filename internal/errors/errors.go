package gerr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrRSVPNotFound = errors.New("No RSVP found for this email address")
	ErrRateLimited  = errors.New("Too many requests, please try again later")

	BadMailRequest      = errors.New("bad mail request")
	MailApiLimitReached = errors.New("mail api limit reached")
	MailQueueFull       = errors.New("mail queue is full")
)

// ValidationError is returned for missing or malformed input. The message is shown to the guest as is.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreOp names the operation a persistence failure happened in.
type StoreOp string

const (
	OpLookup StoreOp = "lookup"
	OpCreate StoreOp = "create"
	OpUpdate StoreOp = "update"
	OpList   StoreOp = "list"
)

var storeMessages = map[StoreOp]string{
	OpLookup: "Failed to look up RSVP. Please try again.",
	OpCreate: "Failed to submit RSVP. Please try again.",
	OpUpdate: "Failed to update RSVP. Please try again.",
	OpList:   "Failed to fetch RSVPs",
}

// StoreError wraps any failure of the record store.
type StoreError struct {
	Op  StoreOp
	Err error
}

func NewStoreError(op StoreOp, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Message is the retryable message shown to the guest.
func (e *StoreError) Message() string {
	if msg, ok := storeMessages[e.Op]; ok {
		return msg
	}
	return "Something went wrong. Please try again."
}

// UserMessage maps any error produced below the handler boundary to the text shown to a visitor.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.Message()
	}
	switch {
	case errors.Is(err, ErrRSVPNotFound):
		return ErrRSVPNotFound.Error()
	case errors.Is(err, ErrRateLimited):
		return ErrRateLimited.Error()
	}
	return "Something went wrong. Please try again."
}

// HTTPStatus maps an error to the status code sent alongside the tagged result.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrRSVPNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}
