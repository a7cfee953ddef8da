package checkout

import "sync"

// Sessions keeps one Workflow per shopper session. Workflows are created on
// first touch and live only in memory, matching the cart registry's lifetime.
type Sessions struct {
	mu        sync.Mutex
	bySession map[string]*Workflow
}

// NewSessions builds an empty workflow registry.
func NewSessions() *Sessions {
	return &Sessions{bySession: make(map[string]*Workflow)}
}

// Get returns the session's workflow, creating it on first use.
func (s *Sessions) Get(sessionID string) *Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf, ok := s.bySession[sessionID]
	if !ok {
		wf = NewWorkflow()
		s.bySession[sessionID] = wf
	}
	return wf
}

// Drop discards the session's workflow.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bySession, sessionID)
}
