// Package storetest holds a compliance suite run against every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	phone := "2348012345678"
	cc := "234"
	u := &model.User{
		ID:           uuid.New().String(),
		Phone:        &phone,
		CountryCode:  &cc,
		FullName:     "Ada Obi",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		SessionToken: uuid.New().String(),
	}

	// Directory
	if _, err := s.Directory().GetByPhone(ctx, phone); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetByPhone on empty directory: err=%v, want ErrNotFound", err)
	}
	if err := s.Directory().Put(ctx, u); err != nil {
		t.Fatalf("Directory.Put: %v", err)
	}
	got, err := s.Directory().GetByPhone(ctx, phone)
	if err != nil || got.ID != u.ID || got.FullName != "Ada Obi" {
		t.Fatalf("Directory.GetByPhone: got=%+v err=%v", got, err)
	}

	// Put on the same phone replaces (login's token refresh path).
	refreshed := *u
	refreshed.SessionToken = uuid.New().String()
	if err := s.Directory().Put(ctx, &refreshed); err != nil {
		t.Fatalf("Directory.Put replace: %v", err)
	}
	got, err = s.Directory().GetByPhone(ctx, phone)
	if err != nil || got.SessionToken != refreshed.SessionToken {
		t.Fatalf("Directory replace not persisted: got=%+v err=%v", got, err)
	}
	if all, err := s.Directory().All(ctx); err != nil || len(all) != 1 {
		t.Fatalf("Directory.All: n=%d err=%v", len(all), err)
	}

	// Current identity
	if _, err := s.Current().Get(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Current.Get on empty store: err=%v, want ErrNotFound", err)
	}
	if err := s.Current().Set(ctx, u); err != nil {
		t.Fatalf("Current.Set: %v", err)
	}
	cur, err := s.Current().Get(ctx)
	if err != nil || cur.ID != u.ID || cur.Phone == nil || *cur.Phone != phone {
		t.Fatalf("Current.Get: got=%+v err=%v", cur, err)
	}

	// A guest (nil phone) can be the current identity.
	guest := &model.User{
		ID:           uuid.New().String(),
		FullName:     "Guest",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		SessionToken: uuid.New().String(),
		IsGuest:      true,
	}
	if err := s.Current().Set(ctx, guest); err != nil {
		t.Fatalf("Current.Set guest: %v", err)
	}
	cur, err = s.Current().Get(ctx)
	if err != nil || !cur.IsGuest || cur.Phone != nil {
		t.Fatalf("Current.Get guest: got=%+v err=%v", cur, err)
	}
	if err := s.Current().Clear(ctx); err != nil {
		t.Fatalf("Current.Clear: %v", err)
	}
	if _, err := s.Current().Get(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Current.Get after Clear: err=%v, want ErrNotFound", err)
	}

	// Transcripts
	userID := u.ID
	if msgs, err := s.Transcripts().List(ctx, userID); err != nil || len(msgs) != 0 {
		t.Fatalf("Transcripts.List empty: n=%d err=%v", len(msgs), err)
	}
	m1 := &model.Message{
		ID:        uuid.New().String(),
		Text:      "What are the eligibility requirements?",
		Sender:    model.SenderUser,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
	m2 := &model.Message{
		ID:     uuid.New().String(),
		Text:   "To be eligible you must be a Nigerian citizen.",
		Sender: model.SenderAssistant,
		Citations: []model.Citation{
			{Document: "NELFUND Eligibility Guidelines", Section: "Section 2.1", ContentPreview: "Citizenship..."},
		},
		Timestamp:     time.Now().UTC().Truncate(time.Millisecond),
		UsedRetrieval: true,
	}
	if err := s.Transcripts().Append(ctx, userID, m1); err != nil {
		t.Fatalf("Transcripts.Append m1: %v", err)
	}
	if err := s.Transcripts().Append(ctx, userID, m2); err != nil {
		t.Fatalf("Transcripts.Append m2: %v", err)
	}
	msgs, err := s.Transcripts().List(ctx, userID)
	if err != nil || len(msgs) != 2 {
		t.Fatalf("Transcripts.List: n=%d err=%v", len(msgs), err)
	}
	if msgs[0].ID != m1.ID || msgs[1].ID != m2.ID {
		t.Fatalf("Transcripts out of insertion order: %v then %v", msgs[0].ID, msgs[1].ID)
	}
	if len(msgs[1].Citations) != 1 || msgs[1].Citations[0].Document != "NELFUND Eligibility Guidelines" {
		t.Fatalf("citations not round-tripped: %+v", msgs[1].Citations)
	}
	if !msgs[1].UsedRetrieval || msgs[1].IsFallback {
		t.Fatalf("flags not round-tripped: %+v", msgs[1])
	}

	// Transcripts are isolated per user ID.
	otherID := uuid.New().String()
	if msgs, err := s.Transcripts().List(ctx, otherID); err != nil || len(msgs) != 0 {
		t.Fatalf("Transcripts leak across users: n=%d err=%v", len(msgs), err)
	}

	// Clear removes the whole transcript and nothing else.
	if err := s.Transcripts().Append(ctx, otherID, m1); err != nil {
		t.Fatalf("Transcripts.Append other: %v", err)
	}
	if err := s.Transcripts().Clear(ctx, userID); err != nil {
		t.Fatalf("Transcripts.Clear: %v", err)
	}
	if msgs, err := s.Transcripts().List(ctx, userID); err != nil || len(msgs) != 0 {
		t.Fatalf("Transcripts.List after Clear: n=%d err=%v", len(msgs), err)
	}
	if msgs, err := s.Transcripts().List(ctx, otherID); err != nil || len(msgs) != 1 {
		t.Fatalf("Clear touched another user's transcript: n=%d err=%v", len(msgs), err)
	}
}
