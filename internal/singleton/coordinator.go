package singleton

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/VoxDroid/envpath/internal/envstore"
	apperrors "github.com/VoxDroid/envpath/internal/errors"
)

// Outcome reports what ShowOrActivate did.
type Outcome int

const (
	ActivatedExisting Outcome = iota
	CreatedNew
)

func (o Outcome) String() string {
	if o == CreatedNew {
		return "created new"
	}
	return "activated existing"
}

// Coordinator discovers an existing viewer before a new one is created.
type Coordinator struct {
	Locator   Locator
	Activator Activator
	// Title is the reserved window title of the viewer.
	Title string
	// Retries bounds lookups after a lost claim race.
	Retries int
	Log     zerolog.Logger
}

// FindExisting looks up a running viewer. When one is found its window is
// raised and it is asked to refresh.
func (c *Coordinator) FindExisting() (Peer, bool) {
	p, ok := c.Locator.Find()
	if !ok {
		return nil, false
	}
	msg := MsgRefresh
	if c.Activator != nil {
		found, err := c.Activator.Activate(c.Title)
		if err != nil {
			c.Log.Debug().Err(err).Str("title", c.Title).Msg("window activation failed")
		}
		if !found {
			msg = MsgActivate
		}
	}
	if err := p.Send(msg); err != nil {
		c.Log.Warn().Err(err).Msg("could not notify the running viewer")
	}
	return p, true
}

// ShowOrActivate activates an existing viewer, or claims the name and runs
// open with the claim held. open owns the viewer's lifetime; the claim is
// released when it returns.
func (c *Coordinator) ShowOrActivate(ctx context.Context, open func(context.Context, Listener) error) (Outcome, error) {
	retries := c.Retries
	if retries <= 0 {
		retries = 3
	}
	for attempt := 0; attempt <= retries; attempt++ {
		if _, ok := c.FindExisting(); ok {
			return ActivatedExisting, nil
		}
		l, err := c.Locator.Claim()
		if errors.Is(err, ErrTaken) {
			// another viewer won the race and may not answer yet
			c.Log.Debug().Int("attempt", attempt).Msg("singleton claim lost, looking up again")
			select {
			case <-ctx.Done():
				return CreatedNew, ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}
		if err != nil {
			return CreatedNew, apperrors.Unexpected(err, "claim the viewer instance")
		}
		defer func() { _ = l.Close() }()
		return CreatedNew, open(ctx, l)
	}
	return CreatedNew, apperrors.New(apperrors.ErrUnexpected,
		"the viewer address is held by a program that is not envpath; set singleton.address to a free port")
}

// RefreshNotifier asks a running viewer to refresh after a PATH write.
// Having no viewer is not an error.
func RefreshNotifier(l Locator) envstore.Notifier {
	return envstore.NotifierFunc(func(envstore.Scope) error {
		p, ok := l.Find()
		if !ok {
			return nil
		}
		return p.Send(MsgRefresh)
	})
}
