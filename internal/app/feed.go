package app

import (
	"sync"

	"quiz-league-service/internal/domain"
)

// StandingsFeed fans standings tables out to subscribers (websocket clients).
type StandingsFeed struct {
	mu          sync.Mutex
	subscribers map[chan []domain.Standing]struct{}
}

func NewStandingsFeed() *StandingsFeed {
	return &StandingsFeed{
		subscribers: make(map[chan []domain.Standing]struct{}),
	}
}

// Subscribe returns a channel of standings snapshots. The caller must invoke
// the returned cancel function to avoid leaks.
func (f *StandingsFeed) Subscribe() (<-chan []domain.Standing, func()) {
	ch := make(chan []domain.Standing, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers the table to every subscriber. Slow consumers have their
// oldest pending snapshot dropped rather than blocking the sender.
func (f *StandingsFeed) Broadcast(table []domain.Standing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- table:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- table
		}
	}
}
