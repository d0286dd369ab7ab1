package cart

import (
	"log/slog"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Notification is a short-lived status message shown to the shopper.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Fanout delivers each notification to every non-nil notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, notifier := range f {
		if notifier != nil {
			notifier.Notify(n)
		}
	}
}

type LogNotifier struct {
	Log       *slog.Logger
	SessionID string
}

func (l LogNotifier) Notify(n Notification) {
	l.Log.Info("cart notification",
		slog.String("session_id", l.SessionID),
		slog.String("level", string(n.Level)),
		slog.String("message", n.Message),
	)
}

// Feed buffers notifications until the next Drain.
type Feed struct {
	mu      sync.Mutex
	pending []Notification
}

func (f *Feed) Notify(n Notification) {
	f.mu.Lock()
	f.pending = append(f.pending, n)
	f.mu.Unlock()
}

func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	if out == nil {
		return []Notification{}
	}
	return out
}
