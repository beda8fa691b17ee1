package session

import (
	"log/slog"
	"sync"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/lib"
)

// Session is a State guarded by a mutex, so events from one client are applied
// one at a time and in order.
type Session struct {
	mu     *sync.Mutex
	logger *slog.Logger
	state  State
}

func New(elements []graph.Element, logger *slog.Logger) *Session {
	return &Session{
		mu:     &sync.Mutex{},
		logger: lib.OrNop(logger),
		state:  NewState(elements),
	}
}

// Dispatch applies ev and returns the resulting view. On error the state is
// unchanged.
func (s *Session) Dispatch(ev Event) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Dispatch(s.state, ev)
	if err != nil {
		s.logger.Warn("Rejected event", "trigger", ev.Trigger, "error", err)
		return s.state.View(), err
	}

	s.logger.Debug("Dispatched event",
		"trigger", ev.Trigger,
		"mode", next.Mode.Kind,
		"elements", len(next.Elements),
		"tooManySelected", next.TooManySelected,
	)
	s.state = next
	return s.state.View(), nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.View()
}
