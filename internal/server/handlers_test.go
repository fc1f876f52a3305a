package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/oracle/internal/matcher"
	"github.com/jonathan/oracle/internal/types"
)

type stubSearcher struct {
	resp           *types.SearchResponse
	err            error
	gotReq         *types.SearchRequest
	honorsDeadline bool
}

func (s *stubSearcher) Run(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	s.gotReq = req
	if s.honorsDeadline {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.resp, s.err
}

func newTestServer(t *testing.T, searcher Searcher) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	return New(Config{Port: 0, Searcher: searcher})
}

func doSearch(s *Server, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHandleSearch_Success(t *testing.T) {
	score := 0.91
	stub := &stubSearcher{resp: &types.SearchResponse{
		Results: []types.Candidate{
			{ID: "ai-abc123-0", Title: "Dragon Court", Kind: types.KindSeries, PersonalScore: &score},
		},
		TotalCandidates: 1,
		Query:           "epic fantasy",
	}}
	s := newTestServer(t, stub)

	w := doSearch(s, []byte(`{"query": "epic fantasy", "contentType": "series"}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp types.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Dragon Court", resp.Results[0].Title)
	assert.Equal(t, 1, resp.TotalCandidates)

	require.NotNil(t, stub.gotReq)
	assert.Equal(t, "epic fantasy", stub.gotReq.Query)
	assert.Equal(t, "series", stub.gotReq.ContentType)
}

func TestHandleSearch_BlankQueryRejected(t *testing.T) {
	stub := &stubSearcher{}
	s := newTestServer(t, stub)

	for _, body := range []string{`{}`, `{"query": ""}`, `{"query": "   "}`} {
		w := doSearch(s, []byte(body))

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "query is required")
	}
	assert.Nil(t, stub.gotReq, "pipeline should not run for a blank query")
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	s := newTestServer(t, &stubSearcher{})

	w := doSearch(s, []byte(`{"query": `))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestHandleSearch_InvalidContentType(t *testing.T) {
	s := newTestServer(t, &stubSearcher{})

	w := doSearch(s, []byte(`{"query": "something", "contentType": "documentary"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
}

func TestHandleSearch_UpstreamFailure(t *testing.T) {
	stub := &stubSearcher{err: &matcher.APICallError{Message: "model overloaded"}}
	s := newTestServer(t, stub)

	w := doSearch(s, []byte(`{"query": "anything"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to search for content")
	assert.NotContains(t, w.Body.String(), "model overloaded", "raw upstream error must not leak")
}

func TestHandleSearch_InternalFailure(t *testing.T) {
	stub := &stubSearcher{err: errors.New("boom")}
	s := newTestServer(t, stub)

	w := doSearch(s, []byte(`{"query": "anything"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleSearch_Timeout(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	s := New(Config{Searcher: &stubSearcher{honorsDeadline: true}, SearchTimeout: 10 * time.Millisecond})

	w := doSearch(s, []byte(`{"query": "anything"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "timed out")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &stubSearcher{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &stubSearcher{})

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
