package fleet

import (
	"context"
	"sync"

	"agritrack/internal/entities"
)

const subscriberBuffer = 16

// Broadcaster раздает события прибытия открытым подпискам.
// Медленный подписчик теряет события, а не блокирует опрос.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan entities.ArrivalEvent
	nextID int
	closed bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan entities.ArrivalEvent)}
}

// Subscribe возвращает канал событий и функцию отписки. Канал закрывается при отписке или Close.
func (b *Broadcaster) Subscribe() (<-chan entities.ArrivalEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan entities.ArrivalEvent, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *Broadcaster) NotifyArrival(_ context.Context, event entities.ArrivalEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
