package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

// errRT is an http.RoundTripper that always returns an error (simulates
// network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("dial tcp: no such host")
}

func unreachableClient(t *testing.T) *Client {
	t.Helper()
	c, err := New("http://backend.invalid", WithHTTPClient(&http.Client{Transport: &errRT{}}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSend_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var got chatRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.PhoneNumber != "2348012345678" || got.Message != "How do I apply?" {
			t.Fatalf("unexpected request: %+v", got)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Response:      "Visit the official portal.",
			PhoneNumber:   got.PhoneNumber,
			UsedRetrieval: true,
			Sources: []wireSource{
				{Source: "NELFUND Application Manual", Page: "Chapter 3", ContentPreview: "Step-by-step..."},
			},
			Timestamp: "2025-03-14T10:30:00Z",
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reply, err := c.Send(context.Background(), "2348012345678", "How do I apply?")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Answer != "Visit the official portal." || !reply.UsedRetrieval {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if len(reply.Citations) != 1 || reply.Citations[0].Document != "NELFUND Application Manual" {
		t.Fatalf("citations not mapped: %+v", reply.Citations)
	}
	if reply.Citations[0].Section != "Chapter 3" {
		t.Fatalf("page not mapped to section: %+v", reply.Citations[0])
	}
	want, _ := time.Parse(time.RFC3339, "2025-03-14T10:30:00Z")
	if !reply.Timestamp.Equal(want) {
		t.Fatalf("timestamp not parsed: %v", reply.Timestamp)
	}
	if reply.IsFallback {
		t.Fatal("remote reply must not be flagged as fallback")
	}
}

func TestSend_NormalizesMissingFields(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Minimal reply: no sources, no used_retrieval, no timestamp.
		_, _ = w.Write([]byte(`{"response":"hello","phone_number":"x"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	reply, err := c.Send(context.Background(), "x", "hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Citations == nil || len(reply.Citations) != 0 {
		t.Fatalf("missing sources must become empty slice: %#v", reply.Citations)
	}
	if reply.UsedRetrieval {
		t.Fatal("missing used_retrieval must default to false")
	}
	if reply.Timestamp.IsZero() {
		t.Fatal("missing timestamp must be filled")
	}
}

func TestSend_ServiceError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"AI service initializing"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Send(context.Background(), "x", "hi")
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if se.Status != http.StatusServiceUnavailable {
		t.Fatalf("status not captured: %d", se.Status)
	}
	if !IsUnavailable(err) {
		t.Fatal("ServiceError must count as unavailable")
	}
}

func TestSend_ConnectivityError(t *testing.T) {
	t.Parallel()
	c := unreachableClient(t)
	_, err := c.Send(context.Background(), "x", "hi")
	var ce *ConnectivityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConnectivityError, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Fatal("ConnectivityError must count as unavailable")
	}
}

func TestFetchHistory_MapsRoles(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/2348012345678" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(sessionResponse{
			PhoneNumber: "2348012345678",
			Messages: []wireMessage{
				{Role: "user", Content: "hi", Timestamp: "2025-03-14T10:30:00Z"},
				{Role: "assistant", Content: "hello"},
			},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	msgs, err := c.FetchHistory(context.Background(), "2348012345678")
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[1].Sender != model.SenderAssistant {
		t.Fatalf("roles not mapped: %s / %s", msgs[0].Sender, msgs[1].Sender)
	}
	if msgs[0].ID == "" || msgs[0].ID == msgs[1].ID {
		t.Fatal("history messages need distinct IDs")
	}
}

func TestFetchHistory_NotFoundIsEmpty(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Session not found"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	msgs, err := c.FetchHistory(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("404 must not be an error, got %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(msgs))
	}
}

func TestResetSession(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reset/2348012345678" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(ResetAck{Status: "session reset", PhoneNumber: "2348012345678"})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	ack, err := c.ResetSession(context.Background(), "2348012345678")
	if err != nil {
		t.Fatalf("ResetSession: %v", err)
	}
	if ack.Status != "session reset" {
		t.Fatalf("unexpected ack: %+v", ack)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"NELFUND Student Loan Navigator","status":"operational"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	if !c.Health(context.Background()) {
		t.Fatal("expected healthy backend")
	}
	if unreachableClient(t).Health(context.Background()) {
		t.Fatal("expected unreachable backend to be unhealthy")
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := New("http://localhost:8000", WithHTTPTimeout(0)); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}
	if _, err := New("http://localhost:8000", WithHTTPClient(nil)); err == nil {
		t.Fatal("expected error for nil http client")
	}
}
