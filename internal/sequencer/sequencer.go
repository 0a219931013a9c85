package sequencer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Exit statuses returned by Result.ExitCode.
const (
	ExitSuccess = 0
	ExitFailure = -1
)

var errNoAction = errors.New("stage has no action")

// StageName identifies a stage in results, errors and configuration.
type StageName string

// String returns the string form of the stage name.
func (n StageName) String() string { return string(n) }

// Stage is one step of a run.
type Stage struct {
	Name StageName
	// Message is printed once before the stage runs; empty prints nothing.
	Message  string
	Disabled bool
	Run      func(ctx context.Context) error
}

// StageError is a failure attributed to the stage that produced it.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Result is the outcome of a run.
type Result struct {
	Completed []StageName
	Skipped   []StageName
	// Failed and Err are set when a stage failed; Err is a *StageError.
	Failed StageName
	Err    error
}

// OK reports whether every enabled stage completed.
func (r Result) OK() bool { return r.Err == nil }

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	if r.OK() {
		return ExitSuccess
	}
	return ExitFailure
}

// Reporter observes a run.
type Reporter interface {
	StageStarted(stage Stage)
	StageFinished(stage Stage, err error)
}

type nopReporter struct{}

func (nopReporter) StageStarted(Stage)         {}
func (nopReporter) StageFinished(Stage, error) {}

// Sequencer runs stages in order.
type Sequencer struct {
	stages   []Stage
	reporter Reporter
	log      *zap.Logger
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithReporter sets the run observer.
func WithReporter(r Reporter) Option { return func(s *Sequencer) { s.reporter = r } }

// WithLogger sets the logger for stage timings.
func WithLogger(l *zap.Logger) Option { return func(s *Sequencer) { s.log = l } }

// New returns a sequencer over a copy of stages.
func New(stages []Stage, opts ...Option) *Sequencer {
	s := &Sequencer{
		stages:   append([]Stage(nil), stages...),
		reporter: nopReporter{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stages returns the configured stages in run order.
func (s *Sequencer) Stages() []Stage { return append([]Stage(nil), s.stages...) }

// Run executes the enabled stages in order and stops at the first failure.
func (s *Sequencer) Run(ctx context.Context) Result {
	var res Result
	for _, st := range s.stages {
		if st.Disabled {
			s.log.Debug("stage disabled", zap.Stringer("stage", st.Name))
			res.Skipped = append(res.Skipped, st.Name)
			continue
		}

		s.reporter.StageStarted(st)
		start := time.Now()
		err := s.runStage(ctx, st)
		s.reporter.StageFinished(st, err)

		if err != nil {
			s.log.Debug("stage failed",
				zap.Stringer("stage", st.Name),
				zap.Duration("took", time.Since(start)),
				zap.Error(err),
			)
			res.Failed = st.Name
			res.Err = &StageError{Stage: st.Name, Err: err}
			return res
		}
		s.log.Debug("stage completed", zap.Stringer("stage", st.Name), zap.Duration("took", time.Since(start)))
		res.Completed = append(res.Completed, st.Name)
	}
	return res
}

func (s *Sequencer) runStage(ctx context.Context, st Stage) (err error) {
	if st.Run == nil {
		return errNoAction
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return st.Run(ctx)
}
