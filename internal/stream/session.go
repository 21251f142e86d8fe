package stream

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charliek/ktail/internal/constants"
	"github.com/charliek/ktail/internal/domain"
	"github.com/charliek/ktail/internal/logs"
	"github.com/charliek/ktail/internal/term"
)

// State is the control loop state
type State int

const (
	// Streaming renders live messages and polls for keystrokes
	Streaming State = iota
	// SearchPaused suspends the live view while history is browsed
	SearchPaused
	// Stopped is terminal; the session returns to its caller
	Stopped
)

// SearchPrompt drives the paused-mode interaction: the operator supplies a
// query, then browses the matches as a read-only list.
type SearchPrompt interface {
	// Query asks for a search string. ok is false when the operator
	// cancelled the prompt.
	Query() (query string, ok bool, err error)
	// Browse presents matches for scanning. Selection has no effect
	// beyond letting the operator look at entries.
	Browse(matches []domain.LogMessage) error
}

// Config holds session tuning knobs.
type Config struct {
	ChannelCapacity int
	Tick            time.Duration
}

// DefaultConfig returns the default session configuration
func DefaultConfig() Config {
	return Config{
		ChannelCapacity: constants.DefaultChannelCapacity,
		Tick:            constants.DefaultTick,
	}
}

// Session owns the aggregation side of the pipeline: the shared message
// channel all workers write to, the history buffer, the filter, and the
// control loop that multiplexes message arrival against operator keystrokes.
type Session struct {
	msgs     chan domain.LogMessage
	history  *logs.History
	filter   *logs.Filter
	renderer *term.Renderer
	keyboard *term.Keyboard
	prompt   SearchPrompt
	tick     time.Duration

	state   State
	targets int
	wg      sync.WaitGroup
}

// NewSession creates a session. History and filter are owned by the session
// loop; workers only ever touch the message channel.
func NewSession(cfg Config, history *logs.History, filter *logs.Filter, renderer *term.Renderer, keyboard *term.Keyboard, prompt SearchPrompt) *Session {
	if cfg.ChannelCapacity <= 0 {
		cfg.ChannelCapacity = constants.DefaultChannelCapacity
	}
	if cfg.Tick <= 0 {
		cfg.Tick = constants.DefaultTick
	}
	return &Session{
		msgs:     make(chan domain.LogMessage, cfg.ChannelCapacity),
		history:  history,
		filter:   filter,
		renderer: renderer,
		keyboard: keyboard,
		prompt:   prompt,
		tick:     cfg.Tick,
	}
}

// Spawn starts a worker goroutine tailing the given stream for a target.
func (s *Session) Spawn(ctx context.Context, target domain.Target, stream io.ReadCloser) {
	s.targets++
	w := NewWorker(target, s.msgs)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		w.Run(ctx, stream)
	}()
}

// Targets returns how many workers were spawned.
func (s *Session) Targets() int {
	return s.targets
}

// Wait blocks until all spawned workers have exited. Intended for callers
// that cancelled the worker context and want a clean shutdown.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Run drives the control loop until the operator quits or input ends. The
// terminal is restored and the footer cleared on every exit path, including
// errors.
func (s *Session) Run(ctx context.Context) error {
	if err := s.renderer.EnableRaw(); err != nil {
		return err
	}
	defer func() {
		s.renderer.ClearFooter()
		s.renderer.Restore()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.keyboard.Run(ctx)

	keys := s.keyboard.Keys()
	keyPending := false

	s.state = Streaming
	s.renderer.DrawFooter(s.status())

	for s.state != Stopped {
		if keys != nil && !keyPending {
			s.keyboard.Request()
			keyPending = true
		}

		// Race message arrival against a keystroke, bounded by the
		// tick so the footer stays live even when idle.
		select {
		case msg := <-s.msgs:
			s.history.Append(msg)
			if s.filter.Keep(msg) {
				s.renderer.PrintLine(msg)
				s.renderer.DrawFooter(s.status())
			}

		case b, ok := <-keys:
			keyPending = false
			if !ok {
				// Input ended; nobody can press quit anymore.
				keys = nil
				s.state = Stopped
				break
			}
			if err := s.handleKey(b); err != nil {
				return err
			}

		case <-time.After(s.tick):
			s.renderer.DrawFooter(s.status())

		case <-ctx.Done():
			s.state = Stopped
		}
	}

	return nil
}

func (s *Session) handleKey(b byte) error {
	switch b {
	case term.KeyQuit, term.KeyCtrlC:
		s.state = Stopped
	case term.KeySearch:
		return s.runSearch()
	default:
		// Unknown keys are a forward-compatible no-op.
	}
	return nil
}

// runSearch suspends the live view, runs the search prompt in cooked mode,
// and resumes streaming afterwards. Workers keep writing while paused; the
// bounded channel stalls them if the pause outlasts its capacity.
func (s *Session) runSearch() error {
	s.state = SearchPaused
	s.renderer.ClearFooter()
	if err := s.renderer.Restore(); err != nil {
		return fmt.Errorf("leaving raw mode: %w", err)
	}

	query, ok, err := s.prompt.Query()
	if err == nil && ok {
		matches := s.history.Search(query)
		if len(matches) > 0 {
			err = s.prompt.Browse(matches)
		}
	}
	if err != nil {
		return fmt.Errorf("search prompt: %w", err)
	}

	if err := s.renderer.EnableRaw(); err != nil {
		return err
	}
	s.state = Streaming
	s.renderer.DrawFooter(s.status())
	return nil
}

// status composes the footer line.
func (s *Session) status() string {
	return fmt.Sprintf("ktail │ %d targets │ %d/%d history │ %s │ /=search q=quit",
		s.targets, s.history.Count(), s.history.Capacity(), s.filter.Describe())
}
