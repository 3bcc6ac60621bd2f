package overlay

import (
	"errors"
	"sync"
)

// Titles is the triple shown on the overlay.
type Titles struct {
	Last    string `json:"last"`
	Current string `json:"current"`
	Next    string `json:"next"`
}

// Clear is the triple published while the episode itself is on screen.
var Clear = Titles{}

// IsClear reports whether all three titles are empty.
func (t Titles) IsClear() bool {
	return t == Clear
}

// Publisher persists titles where the broadcast layer reads them.
type Publisher interface {
	Publish(titles Titles) error
}

// Multi publishes to every publisher in order and joins their errors. A
// failing publisher does not stop the others.
func Multi(publishers ...Publisher) Publisher {
	return multiPublisher(publishers)
}

type multiPublisher []Publisher

func (m multiPublisher) Publish(titles Titles) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(titles); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemoryPublisher records every published triple.
type MemoryPublisher struct {
	mu        sync.Mutex
	published []Titles

	// Err, when set, is returned from every Publish after recording.
	Err error
}

// NewMemoryPublisher creates an empty MemoryPublisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (m *MemoryPublisher) Publish(titles Titles) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, titles)
	return m.Err
}

// Published returns a copy of every triple published so far.
func (m *MemoryPublisher) Published() []Titles {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Titles, len(m.published))
	copy(out, m.published)
	return out
}

// Latest returns the most recent triple, or Clear if nothing was published.
func (m *MemoryPublisher) Latest() Titles {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.published) == 0 {
		return Clear
	}
	return m.published[len(m.published)-1]
}
