package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/alexanderramin/roadmap/internal/intelligence"
	"github.com/alexanderramin/roadmap/internal/llm"
	"github.com/alexanderramin/roadmap/internal/repository"
	"github.com/alexanderramin/roadmap/internal/service"
	"github.com/alexanderramin/roadmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator answers every request with response or err.
type fakeGenerator struct {
	mu       sync.Mutex
	response *llm.GenerateResponse
	err      error
	requests []llm.GenerateRequest
}

func (g *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if req.Credential == "" {
		return nil, llm.ErrMissingCredential
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.response, nil
}

func (g *fakeGenerator) calls() []llm.GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]llm.GenerateRequest(nil), g.requests...)
}

// testUnits is a small plan: two Foundation days (one ISTQB) and an
// Automation day.
func testUnits() []domain.Unit {
	return []domain.Unit{
		testutil.NewTestUnit(1, testutil.WithTitle("Fundamentals of Testing"), testutil.WithCertification(),
			testutil.WithChecklist(false, false)),
		testutil.NewTestUnit(2, testutil.WithTitle("Static Testing")),
		testutil.NewTestUnit(3, testutil.WithTitle("Playwright Locators"), testutil.WithPhase(domain.PhaseAutomation)),
	}
}

// testApp wires real services over an in-memory database and a fake
// generator behind the study partner.
func testApp(t *testing.T) (*App, *fakeGenerator) {
	t.Helper()
	database := testutil.NewTestDB(t)

	store := testutil.NewTestStore(t, testUnits()...)
	roadmapSvc := service.NewRoadmapService(store, repository.NewSQLiteProgressRepo(database), testutil.NewTestUoW(database))
	require.NoError(t, roadmapSvc.Load(context.Background()))

	creds := service.NewCredentialService(repository.NewSQLiteSettingsRepo(database))
	gen := &fakeGenerator{response: &llm.GenerateResponse{Text: "Testing shows the presence of defects."}}

	return &App{
		Roadmap:     roadmapSvc,
		Credentials: creds,
		Partner:     intelligence.NewStudyPartner(gen, creds, nil),
	}, gen
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Views ---

func TestRootCmd_NonInteractivePrintsList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Fundamentals of Testing")
	assert.Contains(t, out, "Playwright Locators")
}

func TestListCmd_SearchAndFilter(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "list", "--filter", "istqb")
	require.NoError(t, err)
	assert.Contains(t, out, "Fundamentals of Testing")
	assert.NotContains(t, out, "Static Testing")

	out, err = executeCmd(t, app, "list", "-s", "PLAYWRIGHT")
	require.NoError(t, err)
	assert.Contains(t, out, "Playwright Locators")
	assert.NotContains(t, out, "Fundamentals of Testing")

	out, err = executeCmd(t, app, "list", "--filter", "automation", "--search", "static")
	require.NoError(t, err)
	assert.Contains(t, out, "No days match")
}

func TestListCmd_RejectsUnknownFilter(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "list", "--filter", "weekly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter")
}

func TestBoardCmd_GroupsByStatus(t *testing.T) {
	app, _ := testApp(t)
	_, err := app.Roadmap.SetStatus(context.Background(), 2, domain.StatusDone)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "board")
	require.NoError(t, err)
	assert.Contains(t, out, "NOT STARTED (2)")
	assert.Contains(t, out, "IN PROGRESS (0)")
	assert.Contains(t, out, "DONE (1)")
}

func TestShowCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "DAY 1")
	assert.Contains(t, out, "Fundamentals of Testing")
	assert.Contains(t, out, "d1-2")

	_, err = executeCmd(t, app, "show", "42")
	require.Error(t, err)

	_, err = executeCmd(t, app, "show", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid day")
}

func TestStatsCmd(t *testing.T) {
	app, _ := testApp(t)
	_, err := app.Roadmap.SetStatus(context.Background(), 1, domain.StatusDone)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1/3 days done")
	assert.Contains(t, out, "1/1 certification days done")
}

// --- Progress ---

func TestStatusCmd_Override(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "status", "day2", "in_progress")
	require.NoError(t, err)
	assert.Contains(t, out, "In Progress")

	u, err := app.Roadmap.Get(2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, u.Status)
}

func TestStatusCmd_RequiresStatusWhenNotInteractive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "status", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status is required")

	_, err = executeCmd(t, app, "status", "2", "blocked")
	require.Error(t, err)
}

func TestCheckCmd_TogglesAndDerivesStatus(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "check", "1", "d1-1")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2 items done")
	assert.Contains(t, out, "In Progress")

	out, err = executeCmd(t, app, "check", "1", "d1-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Done")

	_, err = executeCmd(t, app, "check", "1", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no checklist item "nope" on day 1`)
}

func TestAddAndRemoveCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "add", "2", "Review", "the", "glossary")
	require.NoError(t, err)
	assert.Contains(t, out, "Review the glossary")
	assert.Contains(t, out, "item-1")

	u, err := app.Roadmap.Get(2)
	require.NoError(t, err)
	require.Len(t, u.Checklist, 2)

	_, err = executeCmd(t, app, "rm", "2", "item-1")
	require.NoError(t, err)
	u, err = app.Roadmap.Get(2)
	require.NoError(t, err)
	assert.Len(t, u.Checklist, 1)

	_, err = executeCmd(t, app, "add", "2", "   ")
	require.Error(t, err)
}

func TestNotesCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "notes", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes.")

	_, err = executeCmd(t, app, "notes", "3", "use", "getByRole")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "notes", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "use getByRole")

	_, err = executeCmd(t, app, "notes", "3", "--clear")
	require.NoError(t, err)
	u, err := app.Roadmap.Get(3)
	require.NoError(t, err)
	assert.Empty(t, u.Notes)
}

func TestTimeAndConfidenceCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "time", "1", "1.5")
	require.NoError(t, err)
	assert.Contains(t, out, "1.5h")

	_, err = executeCmd(t, app, "confidence", "1", "4")
	require.NoError(t, err)

	u, err := app.Roadmap.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, domain.Float64OrZero(u.TimeSpentHours))
	assert.Equal(t, 4, domain.IntOrZero(u.ConfidenceLevel))

	_, err = executeCmd(t, app, "time", "1", "-2")
	require.Error(t, err)
	_, err = executeCmd(t, app, "confidence", "1", "6")
	require.Error(t, err)
}

// --- Study partner ---

func TestAskCmd_MissingKeyReturnsHint(t *testing.T) {
	app, gen := testApp(t)

	out, err := executeCmd(t, app, "ask", "explain", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrMissingCredential)
	assert.Contains(t, out, "roadmap key set")
	assert.Len(t, gen.calls(), 1)
}

func TestAskCmd_ExplainUsesSavedKey(t *testing.T) {
	app, gen := testApp(t)
	_, err := executeCmd(t, app, "key", "set", "AIza-test-1234")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "ask", "explain", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "EXPLANATION")
	assert.Contains(t, out, "presence of defects")

	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "AIza-test-1234", calls[0].Credential)
	assert.Equal(t, intelligence.ExplainPrompt("Fundamentals of Testing"), calls[0].Prompt)
}

func TestAskCmd_QuizRevealAndParseFailure(t *testing.T) {
	app, gen := testApp(t)
	require.NoError(t, app.Credentials.Set(context.Background(), "k"))
	gen.response = &llm.GenerateResponse{Quiz: []llm.QuizQuestion{
		{Question: "What is a defect?", Options: []string{"A flaw", "A test"}, Answer: "A flaw"},
	}}

	out, err := executeCmd(t, app, "ask", "quiz", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "What is a defect?")
	assert.NotContains(t, out, "Correct Answer:")

	out, err = executeCmd(t, app, "ask", "quiz", "1", "--reveal")
	require.NoError(t, err)
	assert.Contains(t, out, "Correct Answer:")

	gen.err = llm.ErrQuizParse
	out, err = executeCmd(t, app, "ask", "quiz", "1")
	require.NoError(t, err)
	assert.Contains(t, out, intelligence.QuizParseFailedText)
}

func TestAskCmd_CodeOnlyForAutomationTrack(t *testing.T) {
	app, gen := testApp(t)
	require.NoError(t, app.Credentials.Set(context.Background(), "k"))

	_, err := executeCmd(t, app, "ask", "code", "1")
	require.ErrorIs(t, err, intelligence.ErrCodeExampleUnavailable)
	assert.Empty(t, gen.calls())

	_, err = executeCmd(t, app, "ask", "code", "3")
	require.NoError(t, err)
	assert.Len(t, gen.calls(), 1)
}

func TestAskCmd_TaskExplainsItem(t *testing.T) {
	app, gen := testApp(t)
	require.NoError(t, app.Credentials.Set(context.Background(), "k"))

	_, err := executeCmd(t, app, "ask", "task", "1", "d1-2")
	require.NoError(t, err)
	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, intelligence.ExplainTaskPrompt("Fundamentals of Testing", "Task 2"), calls[0].Prompt)

	_, err = executeCmd(t, app, "ask", "task", "1", "missing")
	require.ErrorIs(t, err, intelligence.ErrUnknownItem)
}

func TestAskCmd_RateLimitedShowsHint(t *testing.T) {
	app, gen := testApp(t)
	require.NoError(t, app.Credentials.Set(context.Background(), "k"))
	gen.err = llm.ErrRateLimited

	out, err := executeCmd(t, app, "ask", "explain", "2")
	require.ErrorIs(t, err, llm.ErrRateLimited)
	assert.Contains(t, out, "rate limiting")
}

// --- Key ---

func TestKeyCmd_SetShowClear(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "key", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "No API key saved")

	out, err = executeCmd(t, app, "key", "set", "  secret-abcd  ")
	require.NoError(t, err)
	assert.Contains(t, out, "*******abcd")
	assert.NotContains(t, out, "secret")

	out, err = executeCmd(t, app, "key", "show")
	require.NoError(t, err)
	assert.Equal(t, "*******abcd\n", out)

	_, err = executeCmd(t, app, "key", "clear")
	require.NoError(t, err)
	key, err := app.Credentials.Credential(context.Background())
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestKeyCmd_SetRequiresValueWhenNotInteractive(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "key", "set")
	require.Error(t, err)
}
