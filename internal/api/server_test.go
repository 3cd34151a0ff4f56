package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interntrack/interntrack/internal/analysis"
	"github.com/interntrack/interntrack/internal/performance"
	"github.com/interntrack/interntrack/internal/quiz"
	"github.com/interntrack/interntrack/internal/store"
	"github.com/interntrack/interntrack/internal/tracker"
	"github.com/interntrack/interntrack/internal/tracks"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	catalog, err := tracks.Default()
	require.NoError(t, err)
	_, err = st.TrackRepo().SeedIfEmpty(context.Background(), catalog)
	require.NoError(t, err)

	svc := tracker.New(tracker.Deps{
		Tracks:   st.TrackRepo(),
		Interns:  st.InternRepo(),
		Sessions: st.SessionRepo(),
		Metrics:  st.MetricRepo(),
	})
	srv := httptest.NewServer(NewServer(svc, Options{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func errorType(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "body has no error object: %v", body)
	assert.NotEmpty(t, e["message"])
	return e["type"].(string)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestTracks(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodGet, "/api/v1/tracks", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["tracks"], 3)

	status, body = do(t, srv, http.MethodGet, "/api/v1/tracks/job-2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "AI Research Associate", body["title"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/tracks/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, errNotFound, errorType(t, body))

	status, body = do(t, srv, http.MethodPut, "/api/v1/tracks/go",
		`{"title":"Go Developer","requiredSkills":[{"name":"Go"}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "go", body["id"])
	skills := body["requiredSkills"].([]any)
	assert.Equal(t, float64(3), skills[0].(map[string]any)["minLevel"])

	status, body = do(t, srv, http.MethodPut, "/api/v1/tracks/bad", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, errInvalidRequest, errorType(t, body))
}

func TestInternLifecycle(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/interns",
		`{"name":"Ada","email":"ada@example.com","trackId":"job-1"}`)
	require.Equal(t, http.StatusCreated, status)
	id := body["id"].(string)
	require.NotEmpty(t, id)

	status, body = do(t, srv, http.MethodPost, "/api/v1/interns",
		`{"name":"Ada","email":"ADA@example.com","trackId":"job-1"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, errConflict, errorType(t, body))

	status, body = do(t, srv, http.MethodPost, "/api/v1/interns/"+id+"/onboard",
		`{"skills":[{"name":"React","level":2},{"name":"CSS","level":3}]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(analysis.SourceFallback), body["source"])
	assert.Equal(t, float64(100), body["similarity"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/interns/"+id, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["onboarded"])
	assert.NotNil(t, body["analysis"])

	items, err := json.Marshal(quiz.FallbackQuiz("React"))
	require.NoError(t, err)
	sessionBody := `{"task":"React basics","quiz":` + string(items) + `,"answers":{"0":0,"1":0}}`
	status, body = do(t, srv, http.MethodPost, "/api/v1/interns/"+id+"/sessions", sessionBody)
	require.Equal(t, http.StatusCreated, status)
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(2), result["score"])
	assert.NotEmpty(t, body["feedback"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/interns/"+id+"/sessions", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["sessions"], 1)

	status, body = do(t, srv, http.MethodGet, "/api/v1/interns/"+id+"/performance", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["overallScore"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/interns/"+id+"/metrics?days=7", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["points"], 3)

	status, body = do(t, srv, http.MethodGet, "/api/v1/cohort", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["interns"], 1)
}

func TestInternErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		wantType string
	}{
		{"unknown intern", http.MethodGet, "/api/v1/interns/nope", "", http.StatusNotFound, errNotFound},
		{"unknown track", http.MethodPost, "/api/v1/interns", `{"name":"A","email":"a@b.c","trackId":"x"}`, http.StatusNotFound, errNotFound},
		{"bad email", http.MethodPost, "/api/v1/interns", `{"name":"A","email":"ab","trackId":"job-1"}`, http.StatusBadRequest, errInvalidRequest},
		{"bad json", http.MethodPost, "/api/v1/interns", `{`, http.StatusBadRequest, errInvalidRequest},
		{"bad days", http.MethodGet, "/api/v1/interns/x/metrics?days=abc", "", http.StatusBadRequest, errInvalidRequest},
		{"onboard unknown", http.MethodPost, "/api/v1/interns/nope/onboard", `{"skills":[]}`, http.StatusNotFound, errNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.wantType, errorType(t, body))
		})
	}
}

func TestQuiz(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/quiz", `{"task":"Python decorators"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["questions"], 1)

	status, body = do(t, srv, http.MethodPost, "/api/v1/quiz", `{"task":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, errInvalidRequest, errorType(t, body))
}

func TestAnalyzeStateless(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/api/v1/analyze", `{
		"role": {"id":"r","title":"Frontend","requiredSkills":[{"name":"React","minLevel":4},{"name":"CSS","minLevel":3}]},
		"skills": [{"name":"React","level":2}]
	}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(100), body["similarity"])
	assert.Len(t, body["gaps"], 2)
}

func TestPerformanceStateless(t *testing.T) {
	srv := newTestServer(t)

	var sessions []performance.SessionRecord
	for _, s := range []int{5, 6, 7, 8, 8, 9} {
		score := s
		sessions = append(sessions, performance.SessionRecord{Task: "t", Score: &score})
	}
	payload, err := json.Marshal(map[string]any{"sessions": sessions})
	require.NoError(t, err)

	status, body := do(t, srv, http.MethodPost, "/api/v1/performance", string(payload))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 38.9, body["improvementRate"])
	assert.Equal(t, 7.2, body["overallScore"])
}
