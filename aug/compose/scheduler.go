package compose

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-augment/aug/grid"
)

var (
	// ErrUnknownMethod indicates an unsupported composition method.
	ErrUnknownMethod = errors.New("compose: unknown method")
	// ErrEmptyPool indicates a scheduler invoked without augmentations.
	ErrEmptyPool = errors.New("compose: augmentation pool is empty")
)

// Method selects how the scheduler composes the pipeline.
type Method int

// MethodPickOne selects exactly one augmentation per call.
const MethodPickOne Method = iota

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m == MethodPickOne
}

// String returns the method name.
func (m Method) String() string {
	if m == MethodPickOne {
		return "pick-one"
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// Rule classifies an augmentation for pipeline placement.
type Rule func(*Augmentation) bool

// Scheduler picks one augmentation per call from its pool and places it
// before or after a fixed processing chain. An augmentation matching
// the pre-process rule runs before the chain; otherwise, one matching
// the post-process rule runs after it. An augmentation matching neither
// rule is silently skipped for that call.
type Scheduler struct {
	pool     []*Augmentation
	preRule  Rule
	postRule Rule
	process  Transform
	method   Method
	rng      *rand.Rand
	log      *zap.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler) error

// WithMethod sets the composition method (default [MethodPickOne]).
// Validity is checked at call time, matching the reference behavior.
func WithMethod(m Method) SchedulerOption {
	return func(s *Scheduler) error {
		s.method = m
		return nil
	}
}

// WithPool sets the initial augmentation pool.
func WithPool(pool []*Augmentation) SchedulerOption {
	return func(s *Scheduler) error {
		s.pool = pool
		return nil
	}
}

// WithRNG sets a deterministic random number generator for pool selection.
func WithRNG(rng *rand.Rand) SchedulerOption {
	return func(s *Scheduler) error {
		s.rng = rng
		return nil
	}
}

// WithLogger sets a structured logger for selection diagnostics
// (default is a no-op logger).
func WithLogger(log *zap.Logger) SchedulerOption {
	return func(s *Scheduler) error {
		s.log = log
		return nil
	}
}

// NewScheduler creates a scheduler around a fixed processing transform.
// process may be nil, in which case the middle of the pipeline is the
// identity. Both classification rules are required.
func NewScheduler(process Transform, preRule, postRule Rule, opts ...SchedulerOption) (*Scheduler, error) {
	if preRule == nil || postRule == nil {
		return nil, errors.New("compose: classification rules must not be nil")
	}

	if process == nil {
		process = Identity()
	}

	s := &Scheduler{
		preRule:  preRule,
		postRule: postRule,
		process:  process,
		method:   MethodPickOne,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(s)
		if err != nil {
			return nil, err
		}
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if s.log == nil {
		s.log = zap.NewNop()
	}

	return s, nil
}

// SetPool replaces the augmentation pool.
func (s *Scheduler) SetPool(pool []*Augmentation) {
	s.pool = pool
}

// Apply composes and runs the pipeline for one call: pick one
// augmentation, classify it, then run pre-process, process, and
// post-process in order.
func (s *Scheduler) Apply(g *grid.Grid) (*grid.Grid, error) {
	if !s.method.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(s.method))
	}

	if len(s.pool) == 0 {
		return nil, ErrEmptyPool
	}

	idx := s.rng.IntN(len(s.pool))
	selected := s.pool[idx]

	var pre, post *Augmentation

	switch {
	case s.preRule(selected):
		pre = selected
	case s.postRule(selected):
		post = selected
	default:
		// Matching neither rule drops the selection for this call.
	}

	s.log.Debug("composed pipeline",
		zap.Int("index", idx),
		zap.String("augmentation", selected.Name()),
		zap.Bool("pre", pre != nil),
		zap.Bool("post", post != nil),
	)

	out := g

	if pre != nil {
		var err error

		out, err = pre.Apply(out)
		if err != nil {
			return nil, err
		}
	}

	out, err := s.process.Apply(out)
	if err != nil {
		return nil, err
	}

	if post != nil {
		out, err = post.Apply(out)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
