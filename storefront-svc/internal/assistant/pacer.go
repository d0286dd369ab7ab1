package assistant

import (
	"math/rand"
	"time"
)

// Pacer chooses how long a reply "thinks" before it is shown.
type Pacer interface {
	Delay() time.Duration
}

type PacerFunc func() time.Duration

func (f PacerFunc) Delay() time.Duration { return f() }

// RandomPacer draws a delay uniformly from [Min, Max).
type RandomPacer struct {
	Min time.Duration
	Max time.Duration
}

func (p RandomPacer) Delay() time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rand.Int63n(int64(p.Max-p.Min)))
}

type NoDelay struct{}

func (NoDelay) Delay() time.Duration { return 0 }
