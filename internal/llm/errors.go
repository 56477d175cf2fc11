package llm

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

var (
	// ErrMissingCredential is returned before any request is made when the
	// caller has no API key.
	ErrMissingCredential = errors.New("missing API key; add it with `roadmap key set`")

	// ErrPermissionDenied marks a 403: the key exists but is restricted or invalid.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited marks a 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream marks any other transport, status or decoding failure.
	ErrUpstream = errors.New("upstream error")

	// ErrQuizParse indicates the model answered but the quiz JSON was unusable.
	ErrQuizParse = errors.New("quiz parsing failed")
)

// APIError is one failed attempt. Error() is the message shown to the user;
// errors.Is matches the class sentinel and, for transport failures, the cause.
type APIError struct {
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Body       string

	class error
	cause error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.class, e.cause}
	}
	return []error{e.class}
}

func statusError(code int, body string) *APIError {
	switch code {
	case http.StatusForbidden:
		return &APIError{StatusCode: code, Message: "403 Permission Denied. Check Key restrictions.", Body: body, class: ErrPermissionDenied}
	case http.StatusTooManyRequests:
		return &APIError{StatusCode: code, Message: "Too Many Requests", Body: body, class: ErrRateLimited}
	default:
		return &APIError{StatusCode: code, Message: "API Error: " + strconv.Itoa(code), Body: body, class: ErrUpstream}
	}
}

func transportError(err error) *APIError {
	return &APIError{Message: err.Error(), class: ErrUpstream, cause: err}
}

// ErrorClass groups errors for presentation.
type ErrorClass string

const (
	ClassNone              ErrorClass = ""
	ClassMissingCredential ErrorClass = "MISSING_CREDENTIAL"
	ClassPermissionDenied  ErrorClass = "PERMISSION_DENIED"
	ClassRateLimited       ErrorClass = "RATE_LIMITED"
	ClassQuizParse         ErrorClass = "QUIZ_PARSE"
	ClassCanceled          ErrorClass = "CANCELED"
	ClassUpstream          ErrorClass = "UPSTREAM"
)

// Classify maps an error returned by the client to its class.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrMissingCredential):
		return ClassMissingCredential
	case errors.Is(err, ErrPermissionDenied):
		return ClassPermissionDenied
	case errors.Is(err, ErrRateLimited):
		return ClassRateLimited
	case errors.Is(err, ErrQuizParse):
		return ClassQuizParse
	case errors.Is(err, context.Canceled):
		return ClassCanceled
	default:
		return ClassUpstream
	}
}
