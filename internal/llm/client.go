// Package llm is the client for the external text-generation API. It holds
// no mutable state: concurrent calls are independent.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Mode selects how the generated text is returned.
type Mode string

const (
	ModeText Mode = "text"
	ModeQuiz Mode = "quiz"
)

// NoContentText is returned, successfully, when the response has no candidate text.
const NoContentText = "No response generated."

// GenerateRequest holds the parameters for one generation call.
type GenerateRequest struct {
	Prompt     string
	Credential string
	Mode       Mode
}

// GenerateResponse holds the result of a generation call. Quiz is set only
// in ModeQuiz.
type GenerateResponse struct {
	Text      string
	Quiz      []QuizQuestion
	Model     string
	Attempts  int
	LatencyMs int64
}

// Generator is the client contract used by the study partner.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// geminiClient implements Generator against the generateContent endpoint.
type geminiClient struct {
	cfg      Config
	http     *http.Client
	sleep    Sleeper
	observer Observer
	now      func() time.Time
}

// ClientOption customizes the client; tests inject transports and sleepers.
type ClientOption func(*geminiClient)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *geminiClient) { g.http = c }
}

func WithSleeper(s Sleeper) ClientOption {
	return func(g *geminiClient) { g.sleep = s }
}

// NewGeminiClient creates a Generator for the Gemini REST API.
func NewGeminiClient(cfg Config, observer Observer, opts ...ClientOption) Generator {
	if observer == nil {
		observer = NoopObserver{}
	}
	g := &geminiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		sleep:    TimerSleep,
		observer: observer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if strings.TrimSpace(req.Credential) == "" {
		return nil, ErrMissingCredential
	}
	if req.Mode == "" {
		req.Mode = ModeText
	}

	start := c.now()
	policy := c.cfg.Policy()
	state := StartRetry()
	var text string

	for state.Phase == Attempting {
		if state.Delay > 0 {
			if err := c.sleep(ctx, state.Delay); err != nil {
				return nil, c.finish(req, start, state.Attempt-1, fmt.Errorf("waiting to retry after %q: %w", state.Err, err))
			}
		}

		attemptStart := c.now()
		var err error
		text, err = c.attempt(ctx, req)
		c.observer.OnAttempt(AttemptEvent{
			Mode:      req.Mode,
			Model:     c.cfg.Model,
			Attempt:   state.Attempt,
			LatencyMs: c.now().Sub(attemptStart).Milliseconds(),
			Err:       err,
		})

		if err != nil && ctx.Err() != nil {
			return nil, c.finish(req, start, state.Attempt, ctx.Err())
		}
		state = Step(state, policy, err)
	}

	if state.Phase == Failed {
		return nil, c.finish(req, start, state.Attempt, state.Err)
	}

	resp := &GenerateResponse{
		Text:     text,
		Model:    c.cfg.Model,
		Attempts: state.Attempt,
	}
	if req.Mode == ModeQuiz {
		quiz, err := ParseQuiz(text)
		if err != nil {
			return nil, c.finish(req, start, state.Attempt, err)
		}
		resp.Quiz = quiz
	}
	resp.LatencyMs = c.now().Sub(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Mode:      req.Mode,
		Model:     c.cfg.Model,
		Attempts:  state.Attempt,
		LatencyMs: resp.LatencyMs,
		Success:   true,
	})
	return resp, nil
}

// finish reports a failed call and hands err back unchanged.
func (c *geminiClient) finish(req GenerateRequest, start time.Time, attempts int, err error) error {
	c.observer.OnCallComplete(CallEvent{
		Mode:      req.Mode,
		Model:     c.cfg.Model,
		Attempts:  attempts,
		LatencyMs: c.now().Sub(start).Milliseconds(),
		Success:   false,
		ErrorCode: Classify(err),
	})
	return err
}

func (c *geminiClient) endpointURL(credential string) string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), url.PathEscape(c.cfg.Model), url.QueryEscape(credential))
}

// attempt performs one POST and extracts the first candidate's text.
func (c *geminiClient) attempt(ctx context.Context, req GenerateRequest) (string, error) {
	if c.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.AttemptTimeout)
		defer cancel()
	}

	data, err := json.Marshal(newGenerateContentRequest(req.Prompt))
	if err != nil {
		return "", transportError(fmt.Errorf("marshaling request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(req.Credential), bytes.NewReader(data))
	if err != nil {
		return "", transportError(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return "", transportError(redactKey(err, req.Credential))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", transportError(fmt.Errorf("reading response: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return "", statusError(httpResp.StatusCode, string(body))
	}

	var resp generateContentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", transportError(fmt.Errorf("decoding response: %w", err))
	}
	return resp.firstText(), nil
}

// redactKey keeps the credential out of *url.Error messages, which embed
// the full request URL.
func redactKey(err error, credential string) error {
	msg := err.Error()
	if credential == "" || !strings.Contains(msg, url.QueryEscape(credential)) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(msg, url.QueryEscape(credential), "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
