package relay

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/VoxDroid/envpath/internal/errors"
)

// DefaultInterval is the polling period when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Waiter is the process whose output is relayed.
type Waiter interface {
	Done() <-chan struct{}
}

// Relay copies a channel to a writer while a process runs.
type Relay struct {
	Interval time.Duration
	Log      zerolog.Logger
}

// Run drains ch into out every Interval until waiter is done or ctx ends,
// then drains once more. Output therefore lags the child by at most one
// interval. I/O errors are logged and do not stop the relay. Run returns the
// number of bytes relayed.
func (r Relay) Run(ctx context.Context, ch Channel, waiter Waiter, out io.Writer) int64 {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var total int64
	drain := func() {
		n, err := ch.Drain(out)
		total += n
		if err != nil {
			rerr := errors.Wrap(err, errors.ErrRelayIO, "relay child output").WithDetail("channel", ch.Path())
			r.Log.Warn().Err(rerr).Msg("relay drain failed")
		}
	}
	for {
		select {
		case <-ctx.Done():
			drain()
			return total
		case <-waiter.Done():
			drain()
			return total
		case <-ticker.C:
			drain()
		}
	}
}
