package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"stockdash/internal/market"
	"stockdash/internal/symbols"
)

// Session is a long-lived dashboard. Every input change starts a new
// generation and cancels the one in flight.
type Session struct {
	backend  market.Backend
	logger   *slog.Logger
	onChange func(State)

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu     sync.Mutex
	inputs Inputs
	state  State
	cancel context.CancelFunc
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger failures are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithOnChange registers fn to be called after every state change. Calls come
// from several goroutines and may arrive out of order, so fn should treat
// them as a signal and read State for the latest snapshot.
func WithOnChange(fn func(State)) Option {
	return func(s *Session) { s.onChange = fn }
}

// NewSession returns an idle session for the given inputs. Nothing is fetched
// until the first Refresh or Set call.
func NewSession(b market.Backend, in Inputs, opts ...Option) *Session {
	ctx, stop := context.WithCancel(context.Background())
	s := &Session{
		backend:  b,
		logger:   slog.Default(),
		onChange: func(State) {},
		ctx:      ctx,
		stop:     stop,
		inputs:   in.clone(),
	}
	s.state.Inputs = s.inputs.clone()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the latest snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Inputs returns the inputs the next refresh will use.
func (s *Session) Inputs() Inputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputs.clone()
}

// SetSymbols re-parses the symbol field and refreshes.
func (s *Session) SetSymbols(raw string) {
	s.update(func(in *Inputs) { in.Symbols = symbols.Parse(raw) })
}

// SetDays replaces the lookback window and refreshes.
func (s *Session) SetDays(days string) {
	s.update(func(in *Inputs) { in.Days = days })
}

// Refresh starts a new generation with unchanged inputs.
func (s *Session) Refresh() {
	s.update(func(*Inputs) {})
}

func (s *Session) update(change func(*Inputs)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	change(&s.inputs)
	if s.cancel != nil {
		s.cancel()
	}
	gen := s.state.Gen + 1
	in := s.inputs.clone()
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.state = Reduce(s.state, Started{Gen: gen, Inputs: in})
	snapshot := s.state
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Debug("refresh", "generation", gen, "symbols", in.Symbols, "days", in.Days)
	s.onChange(snapshot)

	go func() {
		defer s.wg.Done()
		defer cancel()
		run(ctx, s.backend, s.logger, gen, in, s.dispatch)
	}()
}

func (s *Session) dispatch(ev Event) {
	s.mu.Lock()
	if ev.generation() != s.state.Gen {
		s.mu.Unlock()
		s.logger.Debug("dropping stale result", "generation", ev.generation())
		return
	}
	s.state = Reduce(s.state, ev)
	snapshot := s.state
	s.mu.Unlock()
	s.onChange(snapshot)
}

// Close cancels in-flight requests and waits for them to return.
// The session ignores input changes afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.stop()
	s.wg.Wait()
}
