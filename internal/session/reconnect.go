package session

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var errBackendDown = errors.New("backend health probe failed")

// Reconnect probes the backend health endpoint under exponential backoff
// until it answers or ctx is cancelled. On success the degraded flag is
// cleared; already-healthy sessions return immediately. Transcripts are not
// refetched: the next Submit resumes normal service.
func (s *Session) Reconnect(ctx context.Context) error {
	if !s.degraded {
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0 // ctx bounds the probe

	err := backoff.Retry(func() error {
		if s.backend.Health(ctx) {
			return nil
		}
		return errBackendDown
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return err
	}

	s.log.Info().Msg("backend reachable again, leaving degraded mode")
	s.degraded = false
	return nil
}
