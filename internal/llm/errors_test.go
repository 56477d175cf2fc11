package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusError_Messages(t *testing.T) {
	cases := []struct {
		code  int
		msg   string
		class error
	}{
		{http.StatusForbidden, "403 Permission Denied. Check Key restrictions.", ErrPermissionDenied},
		{http.StatusTooManyRequests, "Too Many Requests", ErrRateLimited},
		{http.StatusInternalServerError, "API Error: 500", ErrUpstream},
		{http.StatusBadRequest, "API Error: 400", ErrUpstream},
		{http.StatusUnauthorized, "API Error: 401", ErrUpstream},
	}
	for _, tc := range cases {
		err := statusError(tc.code, "")
		assert.Equal(t, tc.msg, err.Error())
		assert.ErrorIs(t, err, tc.class)
		assert.Equal(t, tc.code, err.StatusCode)
	}
}

func TestTransportError_KeepsCause(t *testing.T) {
	err := transportError(context.DeadlineExceeded)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, err.StatusCode)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorClass
	}{
		{nil, ClassNone},
		{ErrMissingCredential, ClassMissingCredential},
		{statusError(http.StatusForbidden, ""), ClassPermissionDenied},
		{fmt.Errorf("wrapped: %w", statusError(http.StatusTooManyRequests, "")), ClassRateLimited},
		{fmt.Errorf("%w: bad json", ErrQuizParse), ClassQuizParse},
		{context.Canceled, ClassCanceled},
		{statusError(http.StatusBadGateway, ""), ClassUpstream},
		{errors.New("anything else"), ClassUpstream},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.err), "%v", tc.err)
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxAttempts = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Model = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Endpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestDefaultConfig_Policy(t *testing.T) {
	p := DefaultConfig().Policy()
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 8*p.InitialBackoff, p.Backoff(4))
}
