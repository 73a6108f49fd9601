package bus

import (
	"sync"

	"github.com/imposera/remora-tracker/internal/model"
)

// Bus fans snapshots out to WebSocket subscribers. Publishing never blocks;
// a slow subscriber just misses intermediate snapshots.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan *model.Snapshot]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[chan *model.Snapshot]struct{})}
}

func (b *Bus) Subscribe() chan *model.Snapshot {
	ch := make(chan *model.Snapshot, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Bus) Unsubscribe(ch chan *model.Snapshot) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Bus) Publish(snap *model.Snapshot) {
	b.mu.RLock()
	for ch := range b.subs {
		select {
		case ch <- snap:
		default:
		}
	}
	b.mu.RUnlock()
}
