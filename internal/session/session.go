// Package session drives the power menu: it lists candidates for the host and turns
// host selections into confirmations, command runs and error notices.
//
// A Session is owned by a single host loop. List and Select must not be called
// concurrently.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ashwch/powermenu/internal/action"
	"github.com/ashwch/powermenu/internal/config"
	"github.com/ashwch/powermenu/internal/rank"
	"github.com/ashwch/powermenu/internal/runtime"
	"github.com/ashwch/powermenu/internal/safety"
)

// ID identifies a candidate. Hosts must echo it back unchanged.
type ID uint64

const (
	IDConfirm ID = action.Count + iota
	IDCancel
	IDDismiss
)

func ActionID(a action.Action) ID {
	return ID(a)
}

// ErrUnknownCandidate is returned by Select when the id is not valid for the
// current state. The state is left untouched.
var ErrUnknownCandidate = errors.New("unknown candidate")

type Candidate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	ID          ID     `json:"id"`
}

type OutcomeKind int

const (
	OutcomeClose OutcomeKind = iota
	OutcomeRefresh
)

// Outcome tells the host what to do after a selection. SelectAll asks the host to
// focus the refreshed candidate set instead of keeping the current query.
type Outcome struct {
	Kind      OutcomeKind
	SelectAll bool
}

func Close() Outcome {
	return Outcome{Kind: OutcomeClose}
}

func Refresh(selectAll bool) Outcome {
	return Outcome{Kind: OutcomeRefresh, SelectAll: selectAll}
}

type Step int

const (
	StepBrowsing Step = iota
	StepAwaitingConfirmation
	StepReporting
)

func (s Step) String() string {
	switch s {
	case StepBrowsing:
		return "browsing"
	case StepAwaitingConfirmation:
		return "awaiting-confirmation"
	case StepReporting:
		return "reporting"
	default:
		return "unknown"
	}
}

// State is the single value the session mutates. Pending is meaningful only while
// awaiting confirmation, Message only while reporting.
type State struct {
	Step    Step
	Pending action.Action
	Message string
}

type Executor interface {
	Execute(cfg config.ActionConfig) error
}

type PluginInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func Info() PluginInfo {
	return PluginInfo{Name: "Power menu", Icon: "computer"}
}

type Session struct {
	cfg      config.Config
	executor Executor
	logger   *slog.Logger
	state    State
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(cfg config.Config, executor Executor, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		executor: executor,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "session"))
	return s
}

// Init loads the config from configDir and wires the shell executor. Config
// problems never fail a session; they fall back to defaults.
func Init(configDir string, opts ...Option) *Session {
	s := New(config.Default(), runtime.ShellExecutor{}, opts...)
	s.cfg, _ = config.Load(configDir, s.logger)
	return s
}

func (s *Session) Config() config.Config {
	return s.cfg
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) List(query string) []Candidate {
	switch s.state.Step {
	case StepReporting:
		return []Candidate{errorCandidate(s.state.Message)}
	case StepAwaitingConfirmation:
		return confirmCandidates(s.state.Pending)
	default:
		return rank.Rank(actionCandidates(), query, func(c Candidate) (string, string) {
			return c.Title, c.Description
		})
	}
}

func (s *Session) Select(id ID) (Outcome, error) {
	switch s.state.Step {
	case StepReporting:
		s.logger.Debug("error notice dismissed")
		s.state = State{}
		return Close(), nil

	case StepAwaitingConfirmation:
		pending := s.state.Pending
		switch id {
		case IDCancel:
			s.logger.Debug("confirmation cancelled", slog.String("action", pending.String()))
			s.state = State{}
			return Refresh(false), nil
		case IDConfirm:
			return s.execute(pending), nil
		default:
			return Outcome{}, fmt.Errorf("%w: id %d while %s", ErrUnknownCandidate, id, s.state.Step)
		}

	default:
		if id >= action.Count {
			return Outcome{}, fmt.Errorf("%w: id %d while %s", ErrUnknownCandidate, id, s.state.Step)
		}
		a := action.Action(id)
		if s.cfg.For(a).Confirm {
			s.logger.Debug("awaiting confirmation", slog.String("action", a.String()))
			s.state = State{Step: StepAwaitingConfirmation, Pending: a}
			return Refresh(true), nil
		}
		return s.execute(a), nil
	}
}

func (s *Session) execute(a action.Action) Outcome {
	cfg := s.cfg.For(a)
	logger := s.logger.With(slog.String("action", a.String()), slog.String("command", cfg.ShellLine()))
	logger.Debug("running action")

	if err := s.executor.Execute(cfg); err != nil {
		message := safety.RedactMessage(err.Error())
		logger.Error("action failed", slog.String("error", message))
		s.state = State{Step: StepReporting, Message: message}
		return Refresh(true)
	}
	s.state = State{}
	return Close()
}

func actionCandidates() []Candidate {
	candidates := make([]Candidate, 0, action.Count)
	for _, a := range action.All() {
		candidates = append(candidates, Candidate{
			Title:       a.Title(),
			Description: a.Description(),
			Icon:        a.Icon(),
			ID:          ActionID(a),
		})
	}
	return candidates
}

func confirmCandidates(pending action.Action) []Candidate {
	return []Candidate{
		{
			Title:       pending.Title(),
			Description: "Proceed with the selected action",
			Icon:        "go-next",
			ID:          IDConfirm,
		},
		{
			Title:       "Cancel",
			Description: "Abort the selected action",
			Icon:        "go-previous",
			ID:          IDCancel,
		},
	}
}

func errorCandidate(message string) Candidate {
	return Candidate{
		Title:       "ERROR!",
		Description: message,
		Icon:        "dialog-error",
		ID:          IDDismiss,
	}
}
