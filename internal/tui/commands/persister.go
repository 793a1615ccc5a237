package commands

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timeblock/internal/item"
)

const persistTimeout = 5 * time.Second

// Persister mirrors changes to a store on a single worker so writes land
// in the order they were enqueued. Results are delivered as PersistedMsg
// through Listen. The queue is unbounded so Enqueue never blocks the
// event loop.
type Persister struct {
	store item.Store

	mu     sync.Mutex
	ready  *sync.Cond
	queue  []item.Change
	closed bool

	results   chan PersistedMsg
	done      chan struct{}
	closeOnce sync.Once
}

// NewPersister starts the worker for store.
func NewPersister(store item.Store) *Persister {
	p := &Persister{
		store:   store,
		results: make(chan PersistedMsg, 64),
		done:    make(chan struct{}),
	}
	p.ready = sync.NewCond(&p.mu)
	go p.run()
	return p
}

func (p *Persister) run() {
	defer close(p.done)
	for {
		c, ok := p.next()
		if !ok {
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := item.Apply(ctx, p.store, c)
		cancel()
		p.results <- PersistedMsg{Change: c, Err: err}
	}
	close(p.results)
}

// next blocks until a change is queued. It returns false once the
// persister is closed and the queue is drained.
func (p *Persister) next() (item.Change, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.queue) == 0 && !p.closed {
		p.ready.Wait()
	}
	if len(p.queue) == 0 {
		return item.Change{}, false
	}
	c := p.queue[0]
	p.queue[0] = item.Change{}
	p.queue = p.queue[1:]
	return c, true
}

// Enqueue schedules c. Zero changes and changes after Close are ignored.
func (p *Persister) Enqueue(c item.Change) {
	if c.IsZero() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue = append(p.queue, c)
	p.ready.Signal()
}

// Listen waits for the next persisted change. The model re-arms it after
// every PersistedMsg.
func (p *Persister) Listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-p.results
		if !ok {
			return nil
		}
		return msg
	}
}

// Close stops accepting changes and waits for queued writes to finish.
// Calling Close more than once is a no-op.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.ready.Broadcast()
		p.mu.Unlock()
		for range p.results {
		}
		<-p.done
	})
}
