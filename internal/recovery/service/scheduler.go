package service

import (
	"sync"
	"time"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
)

// StagePlan fixes one stage's delay from the capture timestamp.
type StagePlan struct {
	Stage domain.Stage
	After time.Duration
}

// Scheduler owns the one-shot recovery timers, grouped per session so
// MarkRecovered can cancel a whole sequence at once. The recovered-flag
// recheck at fire time remains the safety net for timers that slip past a
// cancellation.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string][]*time.Timer
	pending map[string]int
	stopped bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		timers:  make(map[string][]*time.Timer),
		pending: make(map[string]int),
	}
}

// Schedule arms one timer per stage. fire runs on the timer goroutine.
func (s *Scheduler) Schedule(sessionID string, plan []StagePlan, fire func(stage domain.Stage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	group := make([]*time.Timer, 0, len(plan))
	for _, slot := range plan {
		stage := slot.Stage
		timer := time.AfterFunc(slot.After, func() {
			s.timerDone(sessionID)
			fire(stage)
		})
		group = append(group, timer)
	}
	s.timers[sessionID] = group
	s.pending[sessionID] = len(group)
}

func (s *Scheduler) timerDone(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.pending[sessionID]; ok {
		if n <= 1 {
			delete(s.pending, sessionID)
			delete(s.timers, sessionID)
		} else {
			s.pending[sessionID] = n - 1
		}
	}
}

// Cancel stops every pending timer for the session as a group.
func (s *Scheduler) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, timer := range s.timers[sessionID] {
		timer.Stop()
	}
	delete(s.timers, sessionID)
	delete(s.pending, sessionID)
}

// StopAll stops every pending timer and refuses new schedules. Used on
// service shutdown.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for _, group := range s.timers {
		for _, timer := range group {
			timer.Stop()
		}
	}
	s.timers = make(map[string][]*time.Timer)
	s.pending = make(map[string]int)
}
