package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "AIza-test-key"

type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
	err    error
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return r.err
}

func (r *recordingSleeper) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

type captureObserver struct {
	mu       sync.Mutex
	attempts []AttemptEvent
	calls    []CallEvent
}

func (o *captureObserver) OnAttempt(e AttemptEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts = append(o.attempts, e)
}

func (o *captureObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, e)
}

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	cfg.AttemptTimeout = 2 * time.Second
	return cfg
}

func newTestClient(t *testing.T, endpoint string, sleeper *recordingSleeper, obs Observer) Generator {
	t.Helper()
	transport := &http.Transport{DisableKeepAlives: true}
	t.Cleanup(transport.CloseIdleConnections)
	return NewGeminiClient(testConfig(endpoint), obs,
		WithHTTPClient(&http.Client{Transport: transport}),
		WithSleeper(sleeper.Sleep),
	)
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateContentResponse{
		Candidates: []candidate{{Content: content{Role: "model", Parts: []part{{Text: text}}}}},
	})
}

// flakyServer fails the first failures requests with status, then answers text.
func flakyServer(t *testing.T, failures int, status int, text string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if int(hits.Add(1)) <= failures {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"nope"}}`))
			return
		}
		writeCandidate(w, text)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGenerate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t, "Explain BVA", req.Contents[0].Parts[0].Text)

		writeCandidate(w, "**Boundary Value Analysis** tests the edges.")
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	client := newTestClient(t, srv.URL, sleeper, nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Prompt:     "Explain BVA",
		Credential: testKey,
	})

	require.NoError(t, err)
	assert.Equal(t, "**Boundary Value Analysis** tests the edges.", resp.Text)
	assert.Equal(t, "test-model", resp.Model)
	assert.Equal(t, 1, resp.Attempts)
	assert.Nil(t, resp.Quiz)
	assert.Empty(t, sleeper.Delays())
}

func TestGenerate_MissingCredential_NoNetwork(t *testing.T) {
	srv, hits := flakyServer(t, 0, 0, "unused")
	sleeper := &recordingSleeper{}
	obs := &captureObserver{}
	client := newTestClient(t, srv.URL, sleeper, obs)

	for _, cred := range []string{"", "   "} {
		_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: cred})
		assert.ErrorIs(t, err, ErrMissingCredential)
		assert.Equal(t, ClassMissingCredential, Classify(err))
	}
	assert.Equal(t, int32(0), hits.Load())
	assert.Empty(t, sleeper.Delays())
	assert.Empty(t, obs.attempts)
}

func TestGenerate_FourFailuresThenSuccess(t *testing.T) {
	srv, hits := flakyServer(t, 4, http.StatusInternalServerError, "fifth time lucky")
	sleeper := &recordingSleeper{}
	client := newTestClient(t, srv.URL, sleeper, nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	require.NoError(t, err)
	assert.Equal(t, "fifth time lucky", resp.Text)
	assert.Equal(t, 5, resp.Attempts)
	assert.Equal(t, int32(5), hits.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}, sleeper.Delays())
}

func TestGenerate_PermissionDeniedRetriedThenSurfaced(t *testing.T) {
	srv, hits := flakyServer(t, 100, http.StatusForbidden, "")
	sleeper := &recordingSleeper{}
	client := newTestClient(t, srv.URL, sleeper, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "403 Permission Denied. Check Key restrictions.", err.Error())
	assert.Equal(t, int32(5), hits.Load(), "403 is retried like any other failure")
	assert.Len(t, sleeper.Delays(), 4)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "nope")
}

func TestGenerate_RateLimited(t *testing.T) {
	srv, _ := flakyServer(t, 100, http.StatusTooManyRequests, "")
	client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, "Too Many Requests", err.Error())
	assert.Equal(t, ClassRateLimited, Classify(err))
}

func TestGenerate_SurfacesLastErrorVerbatim(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 5 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	require.Error(t, err)
	assert.Equal(t, "Too Many Requests", err.Error())
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestGenerate_GenericStatusIsUpstream(t *testing.T) {
	srv, _ := flakyServer(t, 100, http.StatusBadRequest, "")
	client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "API Error: 400", err.Error())
}

func TestGenerate_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := newTestClient(t, endpoint, &recordingSleeper{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotContains(t, err.Error(), testKey)
}

func TestGenerate_EmptyCandidatesIsFallbackText(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		"empty object":  `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)
			resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})
			require.NoError(t, err)
			assert.Equal(t, NoContentText, resp.Text)
		})
	}
}

func TestGenerate_MalformedBodyIsRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Write([]byte(`{not json`))
			return
		}
		writeCandidate(w, "ok")
	}))
	defer srv.Close()

	sleeper := &recordingSleeper{}
	client := newTestClient(t, srv.URL, sleeper, nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.Delays())
}

const fencedQuiz = "```json\n" + `[
  {"question": "What does BVA test?", "options": ["Edges", "Middles", "Nothing"], "answer": "Edges"},
  {"question": "How many ISTQB principles?", "options": ["5", "7"], "answer": "7"},
  {"question": "Exhaustive testing is...", "options": ["Possible", "Impossible"], "answer": "Impossible"}
]` + "\n```"

func TestGenerate_QuizModeParsesFencedArray(t *testing.T) {
	srv, _ := flakyServer(t, 0, 0, fencedQuiz)
	client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "quiz", Credential: testKey, Mode: ModeQuiz})
	require.NoError(t, err)

	want := []QuizQuestion{
		{Question: "What does BVA test?", Options: []string{"Edges", "Middles", "Nothing"}, Answer: "Edges"},
		{Question: "How many ISTQB principles?", Options: []string{"5", "7"}, Answer: "7"},
		{Question: "Exhaustive testing is...", Options: []string{"Possible", "Impossible"}, Answer: "Impossible"},
	}
	if diff := cmp.Diff(want, resp.Quiz); diff != "" {
		t.Errorf("quiz mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, fencedQuiz, resp.Text)
}

func TestGenerate_QuizModeParseFailure(t *testing.T) {
	srv, hits := flakyServer(t, 0, 0, "Sure! Here is your quiz: [oops")
	obs := &captureObserver{}
	client := newTestClient(t, srv.URL, &recordingSleeper{}, obs)

	resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: "quiz", Credential: testKey, Mode: ModeQuiz})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrQuizParse)
	assert.Equal(t, ClassQuizParse, Classify(err))
	assert.Equal(t, int32(1), hits.Load(), "a parse failure is not a transport failure")
	require.Len(t, obs.calls, 1)
	assert.Equal(t, ClassQuizParse, obs.calls[0].ErrorCode)
}

func TestGenerate_CanceledDuringBackoff(t *testing.T) {
	srv, hits := flakyServer(t, 100, http.StatusInternalServerError, "")
	sleeper := &recordingSleeper{err: context.Canceled}
	client := newTestClient(t, srv.URL, sleeper, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ClassCanceled, Classify(err))
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, err.Error(), "API Error: 500")
}

func TestGenerate_CanceledContextStopsLoop(t *testing.T) {
	srv, hits := flakyServer(t, 100, http.StatusInternalServerError, "")
	ctx, cancel := context.WithCancel(context.Background())
	sleeper := &recordingSleeper{}
	client := NewGeminiClient(testConfig(srv.URL), nil,
		WithHTTPClient(&http.Client{Transport: &http.Transport{DisableKeepAlives: true}}),
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			sleeper.Sleep(ctx, d)
			cancel()
			return TimerSleep(ctx, d)
		}),
	)

	_, err := client.Generate(ctx, GenerateRequest{Prompt: "x", Credential: testKey})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGenerate_ObserverEvents(t *testing.T) {
	srv, _ := flakyServer(t, 2, http.StatusTooManyRequests, "ok")
	obs := &captureObserver{}
	client := newTestClient(t, srv.URL, &recordingSleeper{}, obs)

	_, err := client.Generate(context.Background(), GenerateRequest{Prompt: "x", Credential: testKey})
	require.NoError(t, err)

	require.Len(t, obs.attempts, 3)
	for i, a := range obs.attempts {
		assert.Equal(t, i+1, a.Attempt)
		assert.Equal(t, ModeText, a.Mode)
	}
	assert.ErrorIs(t, obs.attempts[0].Err, ErrRateLimited)
	assert.NoError(t, obs.attempts[2].Err)

	require.Len(t, obs.calls, 1)
	assert.True(t, obs.calls[0].Success)
	assert.Equal(t, 3, obs.calls[0].Attempts)
	assert.Equal(t, "test-model", obs.calls[0].Model)
}

func TestGenerate_ConcurrentCallsAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		json.NewDecoder(r.Body).Decode(&req)
		writeCandidate(w, strings.ToUpper(req.Contents[0].Parts[0].Text))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &recordingSleeper{}, nil)
	prompts := []string{"alpha", "beta", "gamma", "delta"}
	results := make([]string, len(prompts))

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			resp, err := client.Generate(context.Background(), GenerateRequest{Prompt: p, Credential: testKey})
			if assert.NoError(t, err) {
				results[i] = resp.Text
			}
		}(i, p)
	}
	wg.Wait()

	assert.Equal(t, []string{"ALPHA", "BETA", "GAMMA", "DELTA"}, results)
}
