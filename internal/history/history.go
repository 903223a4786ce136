// Package history persists per-user chat transcripts locally so a
// conversation survives a backend outage or a widget reload.
package history

import (
	"context"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/store"
)

// Service scopes transcript access by user ID. The ID is stable across
// logins; a guest's ephemeral ID still gives it an isolated namespace.
type Service struct {
	store store.Store
}

func New(s store.Store) *Service { return &Service{store: s} }

// Append adds m to userID's transcript. An empty userID (no active identity)
// is a silent no-op, matching the widget's behavior in anonymous contexts.
func (s *Service) Append(ctx context.Context, userID string, m *model.Message) error {
	if userID == "" {
		return nil
	}
	return s.store.Transcripts().Append(ctx, userID, m)
}

// All returns the full ordered transcript for userID, empty when none.
func (s *Service) All(ctx context.Context, userID string) ([]*model.Message, error) {
	if userID == "" {
		return nil, nil
	}
	return s.store.Transcripts().List(ctx, userID)
}

// Clear deletes userID's transcript entirely.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.store.Transcripts().Clear(ctx, userID)
}
