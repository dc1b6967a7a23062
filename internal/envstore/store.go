// Package envstore reads and rewrites the persisted PATH of a scope. Every
// mutation re-reads the current value, edits it through pathlist and writes
// the whole value back. There is no lock across the read-modify-write, so
// two writers racing on one scope resolve as last write wins.
package envstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/VoxDroid/envpath/internal/errors"
	"github.com/VoxDroid/envpath/internal/pathlist"
)

// Outcome reports what a mutation did.
type Outcome int

const (
	Added Outcome = iota
	AlreadyPresent
	Removed
	NotPresent
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case AlreadyPresent:
		return "already present"
	case Removed:
		return "removed"
	case NotPresent:
		return "not present"
	}
	return "unknown"
}

// Option configures a Store.
type Option func(*Store)

// WithJournal records every successful write in j.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

// WithNotifiers appends change notifiers.
func WithNotifiers(n ...Notifier) Option {
	return func(s *Store) { s.notifiers = append(s.notifiers, n...) }
}

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store performs PATH mutations against a Backend.
type Store struct {
	backend   Backend
	journal   Journal
	notifiers []Notifier
	log       zerolog.Logger
}

// New returns a Store over b.
func New(b Backend, opts ...Option) *Store {
	s := &Store{backend: b, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

func (s *Store) readRaw(scope Scope) (string, error) {
	raw, err := s.backend.Get(scope)
	if err != nil {
		if errors.GetErrorCode(err) != errors.ErrUnknown {
			return "", err
		}
		return "", errors.Unexpected(err, "read "+scope.String()+" PATH").WithDetail("scope", scope.String())
	}
	return raw, nil
}

// Read returns the parsed PATH of scope.
func (s *Store) Read(scope Scope) (pathlist.List, error) {
	raw, err := s.readRaw(scope)
	if err != nil {
		return pathlist.List{}, err
	}
	return pathlist.Parse(raw), nil
}

// Contains reports whether entry is on scope's PATH.
func (s *Store) Contains(scope Scope, entry string) (bool, error) {
	l, err := s.Read(scope)
	if err != nil {
		return false, err
	}
	return l.Contains(entry), nil
}

func validEntry(entry string) error {
	if err := pathlist.Validate(entry); err != nil {
		return errors.New(errors.ErrValidation, err.Error())
	}
	return nil
}

// Add appends entry to scope's PATH. Nothing is written when the entry is
// already present.
func (s *Store) Add(scope Scope, entry string) (Outcome, error) {
	if err := validEntry(entry); err != nil {
		return AlreadyPresent, err
	}
	raw, err := s.readRaw(scope)
	if err != nil {
		return AlreadyPresent, err
	}
	next, changed := pathlist.Parse(raw).With(entry)
	if !changed {
		s.log.Debug().Str("scope", scope.String()).Str("entry", entry).Msg("entry already present")
		return AlreadyPresent, nil
	}
	if err := s.write(Change{Scope: scope, Op: "add", Entry: pathlist.Normalize(entry), Before: raw, After: next.String()}); err != nil {
		return AlreadyPresent, err
	}
	return Added, nil
}

// Remove deletes every occurrence of entry from scope's PATH. Nothing is
// written when the entry is absent.
func (s *Store) Remove(scope Scope, entry string) (Outcome, error) {
	if err := validEntry(entry); err != nil {
		return NotPresent, err
	}
	raw, err := s.readRaw(scope)
	if err != nil {
		return NotPresent, err
	}
	next, changed := pathlist.Parse(raw).Without(entry)
	if !changed {
		s.log.Debug().Str("scope", scope.String()).Str("entry", entry).Msg("entry not present")
		return NotPresent, nil
	}
	if err := s.write(Change{Scope: scope, Op: "remove", Entry: pathlist.Normalize(entry), Before: raw, After: next.String()}); err != nil {
		return NotPresent, err
	}
	return Removed, nil
}

// Replace writes raw, normalized, as scope's whole PATH. op names the
// operation in the journal. It reports whether a write happened.
func (s *Store) Replace(scope Scope, raw, op string) (bool, error) {
	before, err := s.readRaw(scope)
	if err != nil {
		return false, err
	}
	after := pathlist.Parse(raw).String()
	if after == before {
		return false, nil
	}
	if err := s.write(Change{Scope: scope, Op: op, Before: before, After: after}); err != nil {
		return false, err
	}
	return true, nil
}

// Watch forwards backend change notifications. It returns a nil channel
// when the backend cannot watch.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := s.backend.(Watcher)
	if !ok {
		return nil, nil
	}
	return w.Watch(ctx)
}

func (s *Store) write(c Change) error {
	if err := s.backend.Set(c.Scope, c.After); err != nil {
		if errors.GetErrorCode(err) != errors.ErrUnknown {
			return err
		}
		return errors.Unexpected(err, "write "+c.Scope.String()+" PATH").WithDetail("scope", c.Scope.String())
	}
	s.log.Info().Str("scope", c.Scope.String()).Str("op", c.Op).Str("entry", c.Entry).Msg("PATH updated")
	if s.journal != nil {
		if err := s.journal.Record(c); err != nil {
			s.log.Warn().Err(err).Str("scope", c.Scope.String()).Msg("could not record history")
		}
	}
	for _, n := range s.notifiers {
		if err := n.Notify(c.Scope); err != nil {
			s.log.Warn().Err(err).Str("scope", c.Scope.String()).Msg("change notification failed")
		}
	}
	return nil
}
