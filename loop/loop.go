// Package loop runs the animation state machine one tick at a time.
//
// A Loop is owned by a single goroutine (the host runner). Other goroutines
// talk to it only through Submit.
package loop

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"donut/anim"
	"donut/hal"
	"donut/torus"
)

// State is the run state of a Loop.
type State uint8

const (
	Running State = iota
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Op selects what a Command does.
type Op uint8

const (
	OpPause Op = iota + 1
	OpResume
	OpTogglePause
	OpStop
	// OpStart applies any settings and resumes a paused loop. It fails
	// while already running.
	OpStart
	OpUpdate
	// OpStatus only reports.
	OpStatus
)

func (o Op) String() string {
	switch o {
	case OpPause:
		return "pause"
	case OpResume:
		return "resume"
	case OpTogglePause:
		return "toggle"
	case OpStop:
		return "stop"
	case OpStart:
		return "start"
	case OpUpdate:
		return "update"
	case OpStatus:
		return "status"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Command is a request delivered through Submit.
type Command struct {
	Op     Op
	Update anim.Update
	// Reply, when set, receives the outcome once the loop has handled the
	// command. It must have room for one value.
	Reply chan<- Result
}

// Result is the outcome of a Command, taken at the frame boundary where it
// was applied.
type Result struct {
	OK       bool
	Message  string
	State    State
	Settings anim.Settings
}

// Presenter draws a resolved frame.
type Presenter interface {
	Draw(f *torus.Frame, fg color.RGBA) error
	Close() error
}

// Config wires a Loop to its collaborators.
type Config struct {
	Params    torus.Params
	Presenter Presenter
	// Settings overrides the defaults field by field, clamped.
	Settings anim.Update
	// Events is optional host input.
	Events <-chan hal.Event
	Logger *slog.Logger
}

// Loop renders, presents and advances the animation while running.
type Loop struct {
	params    torus.Params
	driver    *anim.Driver
	presenter Presenter
	events    <-chan hal.Event
	log       *slog.Logger
	mb        mailbox

	state  State
	frames uint64
	closed bool
	done   chan struct{}
}

// New validates cfg and returns a loop in the Running state.
func New(cfg Config) (*Loop, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if cfg.Presenter == nil {
		return nil, errors.New("loop: no presenter")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := anim.DefaultSettings()
	s.Apply(cfg.Settings)
	return &Loop{
		params:    cfg.Params,
		driver:    anim.NewDriver(s),
		presenter: cfg.Presenter,
		events:    cfg.Events,
		log:       log,
		done:      make(chan struct{}),
	}, nil
}

// Submit queues cmd for the next tick. It reports false when the queue is
// full. Safe for concurrent use.
func (l *Loop) Submit(cmd Command) bool {
	return l.mb.TrySend(cmd)
}

// State returns the current run state.
func (l *Loop) State() State { return l.state }

// Driver returns a copy of the animation state.
func (l *Loop) Driver() anim.Driver { return *l.driver }

// Done is closed once the loop has stopped and released its presenter.
// Commands submitted after that are never handled.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Frames reports how many frames were presented.
func (l *Loop) Frames() uint64 { return l.frames }

// TPS is the frame-rate cap the host runner should tick at.
func (l *Loop) TPS() int { return l.driver.Settings.FrameRate }

// Step implements hal.App.
func (l *Loop) Step() error { return l.Tick() }

// Tick handles pending input and commands, then renders one frame if running.
// Once stopped it releases the presenter and returns hal.ErrQuit.
func (l *Loop) Tick() error {
	l.drainEvents()
	l.drainCommands()

	switch l.state {
	case Stopped:
		if err := l.Close(); err != nil {
			return err
		}
		return hal.ErrQuit
	case Paused:
		return nil
	}

	start := time.Now()
	f := torus.Render(l.params, l.driver.A, l.driver.B)
	if err := l.presenter.Draw(f, l.driver.Color()); err != nil {
		l.log.Warn("frame skipped", "frame", l.frames, "err", err)
		return nil
	}
	l.frames++
	l.driver.Advance()
	l.log.Debug("frame", "n", l.frames, "took", time.Since(start))
	return nil
}

// Close stops the loop and releases the presenter. Subsequent calls are
// no-ops.
func (l *Loop) Close() error {
	l.setState(Stopped)
	if l.closed {
		return nil
	}
	l.closed = true
	err := l.presenter.Close()
	close(l.done)
	if err != nil {
		return fmt.Errorf("loop: close presenter: %w", err)
	}
	return nil
}

func (l *Loop) drainEvents() {
	if l.events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-l.events:
			if !ok {
				l.events = nil
				return
			}
			l.handleEvent(ev)
		default:
			return
		}
	}
}

func (l *Loop) handleEvent(ev hal.Event) {
	switch ev.Type {
	case hal.EventClose:
		l.setState(Stopped)
	case hal.EventKey:
		switch {
		case ev.Code == hal.KeySpace:
			l.apply(Command{Op: OpTogglePause})
		case ev.Code == hal.KeyEscape, ev.Rune == 'q', ev.Rune == 'Q':
			l.setState(Stopped)
		}
	}
}

func (l *Loop) drainCommands() {
	for {
		cmd, ok := l.mb.TryRecv()
		if !ok {
			return
		}
		res := l.apply(cmd)
		if cmd.Reply != nil {
			select {
			case cmd.Reply <- res:
			default:
				l.log.Warn("command reply dropped", "op", cmd.Op)
			}
		}
	}
}

func (l *Loop) apply(cmd Command) Result {
	if l.state == Stopped {
		return l.result(false, "stopped")
	}
	switch cmd.Op {
	case OpPause:
		l.setState(Paused)
		return l.result(true, "paused")
	case OpResume:
		l.setState(Running)
		return l.result(true, "resumed")
	case OpTogglePause:
		if l.state == Running {
			l.setState(Paused)
			return l.result(true, "paused")
		}
		l.setState(Running)
		return l.result(true, "resumed")
	case OpStop:
		l.setState(Stopped)
		return l.result(true, "stopped")
	case OpStart:
		if l.state == Running {
			l.log.Info("already running")
			return l.result(false, "already running")
		}
		l.update(cmd.Update)
		l.setState(Running)
		return l.result(true, "started")
	case OpUpdate:
		l.update(cmd.Update)
		return l.result(true, "settings updated")
	case OpStatus:
		return l.result(true, "")
	default:
		l.log.Warn("unknown command", "op", cmd.Op)
		return l.result(false, "unknown command")
	}
}

func (l *Loop) result(ok bool, msg string) Result {
	return Result{OK: ok, Message: msg, State: l.state, Settings: l.driver.Settings}
}

func (l *Loop) update(u anim.Update) {
	if u.Empty() {
		return
	}
	l.driver.Apply(u)
	s := l.driver.Settings
	l.log.Info("settings updated", "requested", u,
		"fps", s.FrameRate, "rotation_speed", s.RotationSpeed, "color_speed", s.ColorSpeed)
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	l.log.Info("state", "from", l.state, "to", s)
	l.state = s
}
