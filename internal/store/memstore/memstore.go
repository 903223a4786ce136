// Package memstore is the in-memory Store implementation. It backs tests and
// guest-only runs where nothing needs to survive the process.
package memstore

import (
	"context"
	"sync"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/store"
)

// Store implements store.Store with maps. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	byPhone     map[string]model.User
	current     *model.User
	transcripts map[string][]model.Message
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		byPhone:     make(map[string]model.User),
		transcripts: make(map[string][]model.Message),
	}
}

func (s *Store) Directory() store.Directory     { return &directory{s} }
func (s *Store) Current() store.Current         { return &current{s} }
func (s *Store) Transcripts() store.Transcripts { return &transcripts{s} }

type directory struct{ s *Store }

func (d *directory) Put(_ context.Context, u *model.User) error {
	if u.Phone == nil {
		return model.ErrValidation
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.byPhone[*u.Phone] = cloneUser(u)
	return nil
}

func (d *directory) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	u, ok := d.s.byPhone[phone]
	if !ok {
		return nil, model.ErrNotFound
	}
	out := cloneUser(&u)
	return &out, nil
}

func (d *directory) All(_ context.Context) ([]*model.User, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	out := make([]*model.User, 0, len(d.s.byPhone))
	for _, u := range d.s.byPhone {
		c := cloneUser(&u)
		out = append(out, &c)
	}
	return out, nil
}

type current struct{ s *Store }

func (c *current) Set(_ context.Context, u *model.User) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	cp := cloneUser(u)
	c.s.current = &cp
	return nil
}

func (c *current) Get(_ context.Context) (*model.User, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if c.s.current == nil {
		return nil, model.ErrNotFound
	}
	cp := cloneUser(c.s.current)
	return &cp, nil
}

func (c *current) Clear(_ context.Context) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.current = nil
	return nil
}

type transcripts struct{ s *Store }

func (t *transcripts) Append(_ context.Context, userID string, m *model.Message) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.transcripts[userID] = append(t.s.transcripts[userID], cloneMessage(m))
	return nil
}

func (t *transcripts) List(_ context.Context, userID string) ([]*model.Message, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	msgs := t.s.transcripts[userID]
	out := make([]*model.Message, 0, len(msgs))
	for i := range msgs {
		c := cloneMessage(&msgs[i])
		out = append(out, &c)
	}
	return out, nil
}

func (t *transcripts) Clear(_ context.Context, userID string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.transcripts, userID)
	return nil
}

// cloneUser copies u so callers cannot mutate stored state through shared
// pointers.
func cloneUser(u *model.User) model.User {
	c := *u
	if u.Phone != nil {
		p := *u.Phone
		c.Phone = &p
	}
	if u.CountryCode != nil {
		cc := *u.CountryCode
		c.CountryCode = &cc
	}
	return c
}

func cloneMessage(m *model.Message) model.Message {
	c := *m
	if m.Citations != nil {
		c.Citations = append([]model.Citation(nil), m.Citations...)
	}
	return c
}
