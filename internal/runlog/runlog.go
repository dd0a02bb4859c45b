// Package runlog records the stages of a pipeline run with lap and elapsed
// timing.
package runlog

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageStatus is the outcome of a stage.
type StageStatus string

const (
	StageComplete StageStatus = "complete"
	StageFailed   StageStatus = "failed"
)

// Stage is one completed or failed pipeline stage.
type Stage struct {
	Name      string         `json:"name"`
	Status    StageStatus    `json:"status"`
	StartedAt time.Time      `json:"started_at"`
	Lap       time.Duration  `json:"lap"`
	Elapsed   time.Duration  `json:"elapsed"`
	Error     string         `json:"error,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Run is passed to every pipeline stage in place of ambient timing state.
// It is not safe for concurrent use; stages run one after another.
type Run struct {
	ID     string
	Start  time.Time
	Stages []Stage

	last time.Time
	now  func() time.Time
	log  *zap.Logger
}

// New starts a run clocked from now.
func New(log *zap.Logger) *Run {
	return newRun(log, time.Now)
}

func newRun(log *zap.Logger, now func() time.Time) *Run {
	if log == nil {
		log = zap.L()
	}
	id := uuid.New().String()
	start := now()
	r := &Run{
		ID:    id,
		Start: start,
		last:  start,
		now:   now,
		log:   log.With(zap.String("run_id", id)),
	}
	r.log.Info("runlog: run started", zap.Time("start", start))
	return r
}

// Logger returns the run-scoped logger.
func (r *Run) Logger() *zap.Logger {
	return r.log
}

// Track runs fn as the named stage and records it. The error from fn is
// returned unchanged.
func (r *Run) Track(name string, fn func() error) error {
	started := r.now()
	err := fn()
	r.finish(name, started, err, nil)
	return err
}

// Step runs fn as the named stage. It is Track for stages that cannot fail.
func (r *Run) Step(name string, fn func()) {
	started := r.now()
	fn()
	r.finish(name, started, nil, nil)
}

// Mark records a stage boundary that did no timed work of its own, such as
// the end of a group of stages. The lap covers time since the last boundary.
func (r *Run) Mark(name string, metadata map[string]any) {
	r.finish(name, r.last, nil, metadata)
}

// Last returns the most recent stage, or false before any stage finished.
func (r *Run) Last() (Stage, bool) {
	if len(r.Stages) == 0 {
		return Stage{}, false
	}
	return r.Stages[len(r.Stages)-1], true
}

// Elapsed is the time since the run started.
func (r *Run) Elapsed() time.Duration {
	return r.now().Sub(r.Start)
}

func (r *Run) finish(name string, started time.Time, err error, metadata map[string]any) {
	now := r.now()
	st := Stage{
		Name:      name,
		Status:    StageComplete,
		StartedAt: started,
		Lap:       now.Sub(r.last),
		Elapsed:   now.Sub(r.Start),
		Metadata:  metadata,
	}
	r.last = now

	fields := []zap.Field{
		zap.String("stage", name),
		zap.Int64("lap_ms", st.Lap.Milliseconds()),
		zap.Int64("elapsed_ms", st.Elapsed.Milliseconds()),
	}
	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}

	if err != nil {
		st.Status = StageFailed
		st.Error = err.Error()
		r.log.Error("runlog: stage failed", append(fields, zap.Error(err))...)
	} else {
		r.log.Info("runlog: stage complete", fields...)
	}
	r.Stages = append(r.Stages, st)
}
