package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(zerolog.Nop()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, phone, msg string) chatResponse {
	t.Helper()
	body, _ := json.Marshal(chatRequest{PhoneNumber: phone, Message: msg})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "operational", out["status"])
}

func TestChat_RetrievalHit(t *testing.T) {
	srv := newTestServer(t)
	out := postChat(t, srv, "2348012345678", "What are the eligibility requirements?")

	assert.True(t, out.UsedRetrieval)
	require.NotEmpty(t, out.Sources)
	assert.Equal(t, "NELFUND Eligibility Guidelines", out.Sources[0].Source)
	assert.Equal(t, "Section 2.1", out.Sources[0].Page)
	assert.Contains(t, out.Response, "Nigerian citizens")
	assert.NotEmpty(t, out.Timestamp)
}

func TestChat_NoMatchIsGeneric(t *testing.T) {
	srv := newTestServer(t)
	out := postChat(t, srv, "2348012345678", "What's the weather like?")

	assert.False(t, out.UsedRetrieval)
	assert.Empty(t, out.Sources)
	assert.NotNil(t, out.Sources, "sources must be an empty array, not null")
}

func TestChat_Validation(t *testing.T) {
	srv := newTestServer(t)
	body, _ := json.Marshal(chatRequest{PhoneNumber: "", Message: "hi"})
	resp, err := http.Post(srv.URL+"/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSession_RecordsTranscript(t *testing.T) {
	srv := newTestServer(t)
	postChat(t, srv, "2348012345678", "How do I apply?")

	resp, err := http.Get(srv.URL + "/sessions/2348012345678")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		PhoneNumber string          `json:"phone_number"`
		Messages    []storedMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Messages, 2)
	assert.Equal(t, "user", out.Messages[0].Role)
	assert.Equal(t, "How do I apply?", out.Messages[0].Content)
	assert.Equal(t, "assistant", out.Messages[1].Role)
}

func TestSession_UnknownPhoneIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/sessions/2340000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReset_DropsSession(t *testing.T) {
	srv := newTestServer(t)
	postChat(t, srv, "2348012345678", "How do I apply?")

	resp, err := http.Post(srv.URL+"/reset/2348012345678", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var ack map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, "session reset", ack["status"])
	assert.Equal(t, "2348012345678", ack["phone_number"])

	after, err := http.Get(srv.URL + "/sessions/2348012345678")
	require.NoError(t, err)
	defer after.Body.Close()
	assert.Equal(t, http.StatusNotFound, after.StatusCode)
}

func TestStatus_Counts(t *testing.T) {
	srv := newTestServer(t)
	postChat(t, srv, "2348012345678", "How do I apply?")
	postChat(t, srv, "2347012345678", "Am I eligible?")

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Status         string `json:"status"`
		SessionsActive int    `json:"sessions_active"`
		TotalMessages  int    `json:"total_messages"`
		Agent          string `json:"agent"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.SessionsActive)
	assert.Equal(t, 4, out.TotalMessages)
	assert.NotEmpty(t, out.Agent)
}
