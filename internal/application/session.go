package application

import (
	"errors"
	"fmt"
	"sync"

	"pronostico/internal/models"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// TransitionError reports an event that is not accepted in the current state.
type TransitionError struct {
	From  models.SessionState
	Event models.SessionEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s while %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

var transitions = map[models.SessionState]map[models.SessionEvent]models.SessionState{
	models.StateIdle: {
		models.EventKeyRequired: models.StateAwaitingKey,
		models.EventKeySaved:    models.StateIdle,
		models.EventSubmit:      models.StateLoading,
		models.EventOpenHistory: models.StateShowingResults,
		models.EventReset:       models.StateIdle,
	},
	models.StateAwaitingKey: {
		models.EventKeyRequired: models.StateAwaitingKey,
		models.EventKeySaved:    models.StateIdle,
		models.EventOpenHistory: models.StateShowingResults,
		models.EventReset:       models.StateAwaitingKey,
	},
	models.StateLoading: {
		models.EventSucceeded: models.StateShowingResults,
		models.EventFailed:    models.StateError,
	},
	models.StateShowingResults: {
		models.EventKeyRequired: models.StateAwaitingKey,
		models.EventKeySaved:    models.StateShowingResults,
		models.EventSubmit:      models.StateLoading,
		models.EventOpenDetail:  models.StateShowingDetail,
		models.EventOpenHistory: models.StateShowingResults,
		models.EventReset:       models.StateIdle,
	},
	models.StateShowingDetail: {
		models.EventKeyRequired: models.StateAwaitingKey,
		models.EventKeySaved:    models.StateShowingDetail,
		models.EventSubmit:      models.StateLoading,
		models.EventOpenDetail:  models.StateShowingDetail,
		models.EventCloseDetail: models.StateShowingResults,
		models.EventOpenHistory: models.StateShowingResults,
		models.EventReset:       models.StateIdle,
	},
	models.StateError: {
		models.EventKeyRequired: models.StateAwaitingKey,
		models.EventKeySaved:    models.StateError,
		models.EventSubmit:      models.StateLoading,
		models.EventOpenDetail:  models.StateShowingDetail,
		models.EventOpenHistory: models.StateShowingResults,
		models.EventReset:       models.StateIdle,
	},
}

// Session is the view model of one front-end conversation. It allows a single
// in-flight analysis and keeps the last results visible after a failure.
type Session struct {
	mu      sync.Mutex
	state   models.SessionState
	results []models.MatchAnalysis
	detail  int
	err     error
}

func NewSession(hasKey bool) *Session {
	state := models.StateIdle
	if !hasKey {
		state = models.StateAwaitingKey
	}
	return &Session{state: state, detail: -1}
}

func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fire applies a bare event with no payload.
func (s *Session) Fire(event models.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fire(event)
}

func (s *Session) fire(event models.SessionEvent) error {
	next, ok := transitions[s.state][event]
	if !ok {
		return &TransitionError{From: s.state, Event: event}
	}
	s.state = next
	return nil
}

// SyncKey aligns the session with the stored API key, which other front ends
// may have changed. It is a no-op while an analysis is running.
func (s *Session) SyncKey(hasKey bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case hasKey && s.state == models.StateAwaitingKey:
		_ = s.fire(models.EventKeySaved)
	case !hasKey && s.state != models.StateAwaitingKey && s.state != models.StateLoading:
		_ = s.fire(models.EventKeyRequired)
	}
}

// Submit marks an analysis as started. It fails while another one is running.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventSubmit); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *Session) Succeed(results []models.MatchAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventSucceeded); err != nil {
		return err
	}
	s.results = results
	s.detail = -1
	return nil
}

// Fail records the analysis error. Previous results are kept.
func (s *Session) Fail(cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventFailed); err != nil {
		return err
	}
	s.err = cause
	return nil
}

// ShowHistory replaces the visible results with a stored history entry.
func (s *Session) ShowHistory(results []models.MatchAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventOpenHistory); err != nil {
		return err
	}
	s.results = results
	s.detail = -1
	s.err = nil
	return nil
}

// OpenDetail selects the match at index i of the visible results.
func (s *Session) OpenDetail(i int) (models.MatchAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.results) {
		if _, ok := transitions[s.state][models.EventOpenDetail]; !ok {
			return models.MatchAnalysis{}, &TransitionError{From: s.state, Event: models.EventOpenDetail}
		}
		return models.MatchAnalysis{}, &ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("No existe el partido número %d.", i+1),
		}
	}
	if err := s.fire(models.EventOpenDetail); err != nil {
		return models.MatchAnalysis{}, err
	}
	s.detail = i
	return s.results[i], nil
}

func (s *Session) CloseDetail() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventCloseDetail); err != nil {
		return err
	}
	s.detail = -1
	return nil
}

// Reset clears results and error. A running analysis cannot be reset.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fire(models.EventReset); err != nil {
		return err
	}
	s.results = nil
	s.detail = -1
	s.err = nil
	return nil
}

func (s *Session) Results() []models.MatchAnalysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MatchAnalysis, len(s.results))
	copy(out, s.results)
	return out
}

// Detail returns the selected match index, or -1.
func (s *Session) Detail() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
