// Package conversation drives the scripted intake dialogue that collects a
// user profile one answer at a time and produces the final plan report.
package conversation

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/nutrichat/backend/internal/catalog"
	"github.com/pageza/nutrichat/backend/internal/diet"
	"github.com/pageza/nutrichat/backend/internal/types"
)

// Planner turns a completed profile into a plan
type Planner interface {
	Build(profile types.UserProfile) (*diet.Plan, error)
}

// SeasonSource provides the season descriptions shown in the final report
type SeasonSource interface {
	SeasonInfo(season types.Season) (catalog.SeasonInfo, bool)
}

// Result is the outcome of one turn. Plan is set only on the turn that
// completes the conversation.
type Result struct {
	State   types.ConversationState `json:"state"`
	Message string                  `json:"message"`
	Status  types.Status            `json:"status"`
	Plan    *diet.Plan              `json:"plan,omitempty"`
}

// Engine holds no per-conversation state; callers serialize turns of the
// same conversation themselves.
type Engine struct {
	planner Planner
	seasons SeasonSource
	now     func() time.Time
	log     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the clock used for season detection
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(planner Planner, seasons SeasonSource, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{planner: planner, seasons: seasons, now: time.Now, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DetectSeason returns the season of the engine's current date
func (e *Engine) DetectSeason() types.Season {
	return SeasonForMonth(e.now().Month())
}

// Advance applies one user message to the conversation. A rejected answer
// leaves the state untouched and reports StatusError. A non-nil error means
// plan generation failed; the returned Result is still valid and has been
// reset to the greeting.
func (e *Engine) Advance(state types.ConversationState, input string) (Result, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch state.Step {
	case types.StepGreeting:
		return e.success(types.StepAge, state.Profile, greetingMessage), nil
	case types.StepCompleted:
		return Result{State: state, Message: completedMessage, Status: types.StatusSuccess}, nil
	case types.StepTimeline:
		return e.finish(state, input)
	}

	s, ok := steps[state.Step]
	if !ok {
		e.log.Warn("unknown conversation step, restarting", zap.String("step", string(state.Step)))
		return e.success(types.StepGreeting, state.Profile, restartMessage), nil
	}

	profile := state.Profile.Clone()
	if retry, ok := s.apply(&profile, input); !ok {
		return Result{State: state, Message: retry, Status: types.StatusError}, nil
	}
	if s.next == types.StepCurrentSeason {
		profile.CurrentSeason = e.DetectSeason()
	}
	return e.success(s.next, profile, s.confirm(profile)), nil
}

// finish records the timeline answer and builds the plan
func (e *Engine) finish(state types.ConversationState, input string) (Result, error) {
	profile := state.Profile.Clone()
	timeline, ok := parseTimeline(input)
	if !ok {
		return Result{State: state, Message: timelineRetry, Status: types.StatusError}, nil
	}
	profile.Timeline = timeline

	plan, err := e.planner.Build(profile)
	if err != nil {
		e.log.Error("failed to generate plan", zap.Error(err))
		return Result{
			State:   types.ConversationState{Step: types.StepGreeting, Profile: profile},
			Message: planFailedMessage,
			Status:  types.StatusError,
		}, fmt.Errorf("failed to generate plan: %w", err)
	}

	return Result{
		State:   types.ConversationState{Step: types.StepCompleted, Profile: profile},
		Message: FormatReport(profile, plan, e.seasonInfo(profile.CurrentSeason)),
		Status:  types.StatusSuccess,
		Plan:    plan,
	}, nil
}

func (e *Engine) success(next types.Step, profile types.UserProfile, message string) Result {
	return Result{
		State:   types.ConversationState{Step: next, Profile: profile},
		Message: message,
		Status:  types.StatusSuccess,
	}
}

func (e *Engine) seasonInfo(season types.Season) catalog.SeasonInfo {
	if e.seasons == nil {
		return catalog.SeasonInfo{}
	}
	info, _ := e.seasons.SeasonInfo(season)
	return info
}
