// Package devserver is a self-contained stand-in for the NELFUND chat
// backend. It speaks the same wire contract as the production service but
// answers from an embedded document set, so the assistant can be developed
// and demoed without the real AI stack.
package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const agentName = "NELFUND Student Loan Navigator (dev)"

type chatRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

type source struct {
	Source         string `json:"source"`
	Page           string `json:"page"`
	ContentPreview string `json:"content_preview"`
}

type chatResponse struct {
	Response      string   `json:"response"`
	PhoneNumber   string   `json:"phone_number"`
	UsedRetrieval bool     `json:"used_retrieval"`
	Sources       []source `json:"sources"`
	Timestamp     string   `json:"timestamp"`
}

type storedMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Server holds all session state in memory behind one mutex. State is lost on
// restart, which is the point of a dev server.
type Server struct {
	log zerolog.Logger

	mu       sync.Mutex
	sessions map[string][]storedMessage
}

func New(log zerolog.Logger) *Server {
	return &Server{
		log:      log,
		sessions: make(map[string][]storedMessage),
	}
}

// Router wires the backend contract onto a gorilla mux.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{phone}", s.handleSession).Methods(http.MethodGet)
	r.HandleFunc("/reset/{phone}", s.handleReset).Methods(http.MethodPost)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": agentName,
		"status":  "operational",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := len(s.sessions)
	total := 0
	for _, msgs := range s.sessions {
		total += len(msgs)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "operational",
		"sessions_active": active,
		"total_messages":  total,
		"agent":           agentName,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if in.PhoneNumber == "" || in.Message == "" {
		writeDetail(w, http.StatusBadRequest, "phone_number and message are required")
		return
	}

	hits := retrieve(in.Message)
	answer, sources := compose(in.Message, hits)
	now := time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.sessions[in.PhoneNumber] = append(s.sessions[in.PhoneNumber],
		storedMessage{Role: "user", Content: in.Message, Timestamp: now},
		storedMessage{Role: "assistant", Content: answer, Timestamp: now},
	)
	s.mu.Unlock()

	s.log.Info().
		Str("phone", in.PhoneNumber).
		Int("sources", len(sources)).
		Msg("chat request served")

	writeJSON(w, http.StatusOK, chatResponse{
		Response:      answer,
		PhoneNumber:   in.PhoneNumber,
		UsedRetrieval: len(hits) > 0,
		Sources:       sources,
		Timestamp:     now,
	})
}

// compose builds the reply text from retrieved chunks, or generic guidance
// when nothing matched.
func compose(query string, hits []doc) (string, []source) {
	if len(hits) == 0 {
		return "I couldn't find that in the NELFUND documents. Common topics include " +
			"eligibility requirements, the application process, required documents and " +
			"repayment terms. Could you rephrase your question?", []source{}
	}
	answer := hits[0].content
	if len(hits) > 1 {
		answer = fmt.Sprintf("%s Additionally: %s", hits[0].content, hits[1].content)
	}
	sources := make([]source, 0, len(hits))
	for _, d := range hits {
		sources = append(sources, source{
			Source:         d.source,
			Page:           d.page,
			ContentPreview: preview(d.content),
		})
	}
	return answer, sources
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	s.mu.Lock()
	msgs, ok := s.sessions[phone]
	out := make([]storedMessage, len(msgs))
	copy(out, msgs)
	s.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"phone_number": phone,
		"messages":     out,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	s.mu.Lock()
	delete(s.sessions, phone)
	s.mu.Unlock()

	s.log.Info().Str("phone", phone).Msg("session reset")
	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "session reset",
		"phone_number": phone,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail mirrors FastAPI-style error bodies so client-side error
// handling sees the same shape in dev and prod.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
