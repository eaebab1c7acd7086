package memory

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rfielding/fsc-synth/family"
	"github.com/rfielding/fsc-synth/metrics"
)

// InferMaxMemory is the MaxMemory value asking Restrict to use the largest
// memory value found in the family.
const InferMaxMemory = -1

// Engine applies one policy to every memory-update hole of a family. It holds
// configuration only; Restrict never modifies its input.
type Engine struct {
	policy    Policy
	filter    Filter
	maxMemory int
	logger    *zap.Logger
	metrics   *metrics.Collector
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine returns an engine for policy. maxMemory is the largest memory
// value of the controller, or InferMaxMemory.
func NewEngine(policy Policy, maxMemory int, opts ...Option) (*Engine, error) {
	p, err := ParsePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	if maxMemory < InferMaxMemory {
		return nil, fmt.Errorf("max memory %d must be >= 0 or %d", maxMemory, InferMaxMemory)
	}
	e := &Engine{
		policy:    p,
		filter:    p.Filter(),
		maxMemory: maxMemory,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Policy() Policy { return e.policy }

// Restrict returns a copy of f in which every memory-update hole keeps only
// the options its policy admits. Other holes are left as they are. With
// PolicyNone the copy is unrestricted.
func (e *Engine) Restrict(f *family.Family) (*family.Family, error) {
	out := f.Copy()
	if e.filter == nil {
		return out, nil
	}
	start := time.Now()

	maxMem := e.maxMemory
	if maxMem == InferMaxMemory {
		var err error
		if maxMem, err = MaxMemory(f); err != nil {
			return nil, err
		}
	}

	holes, pruned := 0, 0
	for h := 0; h < out.NumHoles(); h++ {
		d, err := out.HoleDecision(h)
		if err != nil {
			return nil, err
		}
		if d.Kind != family.KindMemoryUpdate {
			continue
		}
		options := out.HoleOptions(h)
		values, err := optionValues(out, h, options)
		if err != nil {
			return nil, err
		}
		kept := e.filter(d.Memory, maxMem, values)
		if len(kept) == 0 {
			return nil, fmt.Errorf("%w: policy %s, hole %s, candidates %v",
				ErrEmptyRestriction, e.policy, out.HoleName(h), values)
		}
		selected := make([]int, len(kept))
		for i, k := range kept {
			selected[i] = options[k]
		}
		if err := out.HoleSetOptions(h, selected); err != nil {
			return nil, err
		}
		holes++
		pruned += len(options) - len(selected)
		e.logger.Debug("memory hole restricted",
			zap.String("hole", out.HoleName(h)),
			zap.Int("before", len(options)),
			zap.Int("after", len(selected)))
	}

	e.metrics.Restricted(string(e.policy), holes, pruned, time.Since(start))
	e.logger.Info("memory restriction applied",
		zap.String("policy", string(e.policy)),
		zap.Int("max_memory", maxMem),
		zap.Int("holes", holes),
		zap.Int("options_pruned", pruned),
		zap.String("size_before", f.SizeOrOrder()),
		zap.String("size_after", out.SizeOrOrder()))
	return out, nil
}

// MaxMemory returns the largest memory value mentioned by the controller holes
// of f, either as the memory a hole is conditioned on or as an option of a
// memory-update hole.
func MaxMemory(f *family.Family) (int, error) {
	top := 0
	for h := 0; h < f.NumHoles(); h++ {
		d, err := f.HoleDecision(h)
		if err != nil {
			return 0, err
		}
		top = max(top, d.Memory)
		if d.Kind != family.KindMemoryUpdate {
			continue
		}
		values, err := optionValues(f, h, family.FullOptionSet(f.HoleNumOptionsTotal(h)))
		if err != nil {
			return 0, err
		}
		for _, v := range values {
			top = max(top, v)
		}
	}
	return top, nil
}

func optionValues(f *family.Family, h int, options family.OptionSet) ([]int, error) {
	values := make([]int, len(options))
	for i, o := range options {
		label := f.HoleLabel(h, o)
		v, err := strconv.Atoi(label)
		if err != nil {
			return nil, fmt.Errorf("%w: hole %s, label %q", ErrMalformedLabel, f.HoleName(h), label)
		}
		values[i] = v
	}
	return values, nil
}
