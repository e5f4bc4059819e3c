package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/wordle-entropy/wordle"
)

var words = []string{"alloy", "llama", "speed", "erase", "crane", "raise", "abide", "abode"}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	d, err := wordle.NewDictionaryFromStrings(words)
	require.NoError(t, err)
	table, err := wordle.BuildPairTable(context.Background(), d, wordle.WithWorkers(2))
	require.NoError(t, err)
	scorer, err := wordle.NewScorer(d, table)
	require.NoError(t, err)
	return New(scorer, Options{Top: 3, Workers: 2})
}

func do(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestHealth(t *testing.T) {
	rec, out := do(t, newTestServer(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, float64(len(words)), out["words"])
	assert.Equal(t, true, out["table"])
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t)
	rec, out := do(t, s, http.MethodGet, "/feedback?secret=alloy&guess=llama", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALLOY", out["secret"])
	assert.Equal(t, "LLAMA", out["guess"])
	assert.Equal(t, "ygyrr", out["pattern"])

	rec, out = do(t, s, http.MethodGet, "/feedback?secret=all&guess=llama", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, out["error"], "secret")
}

func TestScoreboard(t *testing.T) {
	s := newTestServer(t)
	rec, out := do(t, s, http.MethodGet, "/scoreboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := out["entries"].([]any)
	assert.Len(t, entries, 3)
	prev := wordle.MaxEntropy
	for _, e := range entries {
		score := e.(map[string]any)["entropy"].(float64)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}

	rec, out = do(t, s, http.MethodGet, "/scoreboard?top=100", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, out["entries"], len(words))

	rec, _ = do(t, s, http.MethodGet, "/scoreboard?top=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNarrow(t *testing.T) {
	s := newTestServer(t)
	rec, out := do(t, s, http.MethodPost, "/narrow", `{"steps":[{"guess":"raise","pattern":"ryrrr"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Equal(t, []any{"ALLOY", "LLAMA"}, out["possible"])
	assert.Len(t, out["entries"], 3)

	rec, out = do(t, s, http.MethodPost, "/narrow",
		`{"steps":[{"guess":"raise","pattern":"ryrrr"},{"guess":"llama","pattern":"ygyrr"}],"top":1}`)
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Equal(t, []any{"ALLOY"}, out["possible"])
	assert.Len(t, out["entries"], 1)
}

func TestNarrowErrors(t *testing.T) {
	s := newTestServer(t)
	for name, tc := range map[string]struct {
		body   string
		status int
	}{
		"json":       {`{"steps":`, http.StatusBadRequest},
		"pattern":    {`{"steps":[{"guess":"raise","pattern":"rrxrr"}]}`, http.StatusBadRequest},
		"guess":      {`{"steps":[{"guess":"rai","pattern":"rrrrr"}]}`, http.StatusBadRequest},
		"top":        {`{"top":-1}`, http.StatusBadRequest},
		"impossible": {`{"steps":[{"guess":"zesty","pattern":"ggggg"}]}`, http.StatusUnprocessableEntity},
	} {
		t.Run(name, func(t *testing.T) {
			rec, out := do(t, s, http.MethodPost, "/narrow", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestNarrowCancelled(t *testing.T) {
	s := newTestServer(t)
	body := `{"steps":[{"guess":"raise","pattern":"ryrrr"}]}`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/narrow", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "context canceled")

	// past the deadline the Timeout middleware answers alone
	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	req = httptest.NewRequest(http.MethodPost, "/narrow", strings.NewReader(body)).WithContext(ctx)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNotFound(t *testing.T) {
	rec, out := do(t, newTestServer(t), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, out["error"], "/nope")
}
