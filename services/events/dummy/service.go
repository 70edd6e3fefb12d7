package dummyevents

import (
	"sync"

	"github.com/smartbit/smartbit/core"
)

// Service records emitted events for inspection in tests.
type Service struct {
	mu     sync.Mutex
	events []core.ProgressEvent
}

var _ core.EventService = (*Service)(nil)

func NewService() *Service {
	return &Service{}
}

func (svc *Service) ProgressChanged(evt core.ProgressEvent) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.events = append(svc.events, evt)
}

func (svc *Service) Events() []core.ProgressEvent {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]core.ProgressEvent, len(svc.events))
	copy(out, svc.events)
	return out
}

func (svc *Service) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.events = nil
}
