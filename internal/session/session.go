// Package session is the chat widget's controller: it decides whether the
// transcript comes from the backend, the local history store or a synthesized
// welcome message, and routes submissions to the backend or the fallback
// responder. One Session models one widget lifetime.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Osisami00/Nelfund-Project/internal/fallback"
	"github.com/Osisami00/Nelfund-Project/internal/history"
	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/remote"
)

// State is the orchestrator's lifecycle position. The degraded flag is
// orthogonal: a Ready session may be serving fallback replies.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrNotReady is returned when Submit or Reset is called before Start.
	ErrNotReady = errors.New("session not ready")
	// ErrBusy is returned when a submission is already in flight. The UI
	// enforces this by disabling the input; the guard backs it up.
	ErrBusy = errors.New("a submission is already pending")
)

// Backend is the slice of the remote client the orchestrator needs.
type Backend interface {
	Send(ctx context.Context, identifier, message string) (*model.Reply, error)
	FetchHistory(ctx context.Context, identifier string) ([]model.Message, error)
	ResetSession(ctx context.Context, identifier string) (*remote.ResetAck, error)
	Health(ctx context.Context) bool
}

// Session orchestrates one user's conversation. It is not safe for
// concurrent use: it models the UI's single event loop, and callers are
// expected to serialize access the way the widget does.
type Session struct {
	user    *model.User
	history *history.Service
	backend Backend
	log     zerolog.Logger

	state    State
	degraded bool
	pending  bool
	messages []model.Message
}

// New returns an uninitialized Session for user. Call Start before Submit.
func New(user *model.User, hist *history.Service, backend Backend, log zerolog.Logger) *Session {
	return &Session{
		user:    user,
		history: hist,
		backend: backend,
		log:     log.With().Str("user_id", user.ID).Bool("guest", user.IsGuest).Logger(),
	}
}

// identifier is what the backend keys the conversation by: the canonical
// phone for registered users, a generated guest token otherwise.
func (s *Session) identifier() string {
	if !s.user.IsGuest && s.user.Phone != nil {
		return *s.user.Phone
	}
	return "guest-" + s.user.ID
}

// Start populates the initial transcript. Registered users prefer the remote
// transcript, then the local one, then a welcome message; any backend error
// marks the session degraded and falls through the same local/welcome chain.
// Guests always start from a guest welcome; nothing is looked up.
func (s *Session) Start(ctx context.Context) error {
	s.state = StateLoading

	if s.user.IsGuest {
		s.messages = []model.Message{s.welcome(guestWelcome())}
		s.state = StateReady
		return nil
	}

	remoteMsgs, err := s.backend.FetchHistory(ctx, s.identifier())
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load session history, falling back to local")
		s.degraded = true
		if err := s.loadLocalOrWelcome(ctx); err != nil {
			return err
		}
		s.state = StateReady
		return nil
	}

	s.degraded = false
	if len(remoteMsgs) > 0 {
		s.messages = remoteMsgs
		s.state = StateReady
		return nil
	}
	if err := s.loadLocalOrWelcome(ctx); err != nil {
		return err
	}
	s.state = StateReady
	return nil
}

func (s *Session) loadLocalOrWelcome(ctx context.Context) error {
	local, err := s.history.All(ctx, s.user.ID)
	if err != nil {
		return err
	}
	if len(local) > 0 {
		s.messages = make([]model.Message, 0, len(local))
		for _, m := range local {
			s.messages = append(s.messages, *m)
		}
		return nil
	}
	s.messages = []model.Message{s.welcome(registeredWelcome(s.user.FullName))}
	return nil
}

// Submit sends text on the user's behalf. The user message is appended and
// persisted before the backend call so it survives a failure; if the backend
// is unavailable the reply comes from the fallback corpus and the session is
// marked degraded.
func (s *Session) Submit(ctx context.Context, text string) (*model.Message, error) {
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	if s.pending {
		return nil, ErrBusy
	}
	s.pending = true
	defer func() { s.pending = false }()

	userMsg := model.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    model.SenderUser,
		Citations: []model.Citation{},
		Timestamp: time.Now().UTC(),
	}
	s.messages = append(s.messages, userMsg)
	s.persist(ctx, &userMsg)

	reply, err := s.backend.Send(ctx, s.identifier(), text)
	switch {
	case err == nil:
		s.degraded = false
	case remote.IsUnavailable(err):
		s.log.Warn().Err(err).Msg("backend unavailable, serving fallback reply")
		s.degraded = true
		reply = fallback.Respond(text)
		fallbackRepliesTotal.Inc()
	default:
		return nil, err
	}

	asstMsg := model.Message{
		ID:            uuid.New().String(),
		Text:          reply.Answer,
		Sender:        model.SenderAssistant,
		Citations:     reply.Citations,
		Timestamp:     reply.Timestamp,
		UsedRetrieval: reply.UsedRetrieval,
		IsFallback:    reply.IsFallback,
	}
	s.messages = append(s.messages, asstMsg)
	s.persist(ctx, &asstMsg)
	return &asstMsg, nil
}

// persist writes m to the local history store. A store failure is logged and
// swallowed: the message is already in the in-memory transcript and chat must
// keep working.
func (s *Session) persist(ctx context.Context, m *model.Message) {
	if err := s.history.Append(ctx, s.user.ID, m); err != nil {
		s.log.Error().Err(err).Str("message_id", m.ID).Msg("failed to persist message locally")
	}
}

// Reset clears the conversation. The server-side reset is best effort for
// registered users; the local transcript is always cleared and replaced with
// a fresh welcome message.
func (s *Session) Reset(ctx context.Context) error {
	if s.state != StateReady {
		return ErrNotReady
	}
	if !s.user.IsGuest {
		if _, err := s.backend.ResetSession(ctx, s.identifier()); err != nil {
			s.log.Warn().Err(err).Msg("remote session reset failed, clearing local state anyway")
		}
	}
	if err := s.history.Clear(ctx, s.user.ID); err != nil {
		return err
	}
	s.messages = []model.Message{s.welcome(resetWelcome(s.user))}
	return nil
}

// Messages returns a copy of the displayed transcript.
func (s *Session) Messages() []model.Message {
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// State reports the lifecycle position.
func (s *Session) State() State { return s.state }

// Degraded reports whether the last backend interaction failed.
func (s *Session) Degraded() bool { return s.degraded }

func (s *Session) welcome(text string) model.Message {
	return model.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    model.SenderAssistant,
		Citations: []model.Citation{},
		Timestamp: time.Now().UTC(),
	}
}

func registeredWelcome(fullName string) string {
	return fmt.Sprintf("Hello %s! I'm your NELFUND AI Assistant. I can help you with "+
		"information about student loans, eligibility, application process, and more. "+
		"How can I assist you today?", model.FirstName(fullName))
}

func guestWelcome() string {
	return "Hello! I'm your NELFUND AI Assistant. I can help you with information " +
		"about student loans, eligibility, application process, and more. " +
		"You're chatting as a guest. Register to save your conversation."
}

func resetWelcome(u *model.User) string {
	name := model.FirstName(u.FullName)
	if u.IsGuest {
		name = "Student"
	}
	return fmt.Sprintf("Hello %s! I'm your NELFUND AI Assistant. How can I assist you today?", name)
}
