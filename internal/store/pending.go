package store

import (
	"log/slog"
	"time"

	"github.com/mcoot/candyledger/internal/model"
)

// PutPending stores a new pending decision
func (s *Store) PutPending(d *model.PendingDecision) {
	if !s.pending.insertIfAbsent(d.Token, d.Clone()) {
		s.logger.Warn("duplicate decision token ignored", slog.String("token", d.Token))
		return
	}
	s.changed()
}

// Pending fetches a pending decision by token
func (s *Store) Pending(token string) (*model.PendingDecision, error) {
	e, ok := s.pending.lock(token)
	if !ok {
		return nil, model.ErrDecisionNotFound
	}
	defer e.mu.Unlock()
	return e.val.Clone(), nil
}

// PendingDecisions returns every stored decision in token order
func (s *Store) PendingDecisions() []*model.PendingDecision {
	var out []*model.PendingDecision
	s.pending.each((*model.PendingDecision).Clone, func(_ string, d *model.PendingDecision) {
		out = append(out, d)
	})
	return out
}

// UpdatePending runs fn on a working copy of the decision and commits it if fn returns nil.
// The decision lock is held while fn runs, so fn must not take player or clan locks.
func (s *Store) UpdatePending(token string, fn func(d *model.PendingDecision) error) error {
	e, ok := s.pending.lock(token)
	if !ok {
		return model.ErrDecisionNotFound
	}
	defer e.mu.Unlock()

	work := e.val.Clone()
	if err := fn(work); err != nil {
		return err
	}
	e.val = work
	s.changed()
	return nil
}

// PrunePending deletes settled decisions that expired before cutoff.
// A decision still resolving at that point was orphaned by a restart and is
// removed too. Returns the number removed.
func (s *Store) PrunePending(cutoff time.Time) int {
	removed := 0
	for _, token := range s.pending.keys() {
		e, ok := s.pending.lock(token)
		if !ok {
			continue
		}
		settled := e.val.State != model.DecisionPending
		if settled && e.val.ExpiresAt.Before(cutoff) {
			s.pending.remove(token, e)
			removed++
		}
		e.mu.Unlock()
	}
	if removed > 0 {
		s.changed()
	}
	return removed
}
