package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/store"
	"github.com/Osisami00/Nelfund-Project/internal/store/storetest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return openTemp(t) })
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	phone, cc := "2348012345678", "234"
	u := &model.User{ID: "u1", Phone: &phone, CountryCode: &cc, FullName: "Ada Obi", SessionToken: "tok"}
	if err := s.Directory().Put(ctx, u); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Current().Set(ctx, u); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()
	got, err := s2.Directory().GetByPhone(ctx, phone)
	if err != nil || got.FullName != "Ada Obi" {
		t.Fatalf("directory lost across reopen: got=%+v err=%v", got, err)
	}
	cur, err := s2.Current().Get(ctx)
	if err != nil || cur.ID != "u1" {
		t.Fatalf("current identity lost across reopen: got=%+v err=%v", cur, err)
	}
}
