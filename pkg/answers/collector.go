package answers

import (
	"context"
	"sync"
	"time"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// Sink receives completed submission records, typically the HTTP client for
// the answer-persistence service.
type Sink interface {
	SubmitAnswers(ctx context.Context, record SubmissionRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, record SubmissionRecord) error

func (f SinkFunc) SubmitAnswers(ctx context.Context, record SubmissionRecord) error {
	return f(ctx, record)
}

// Collector holds one respondent session's raw answers keyed by instance id.
// Writes are last-write-wins with no merging of partial updates. Multi-select
// instances start out as empty arrays so an untouched checkbox still submits
// an explicit "selected nothing".
type Collector struct {
	mu         sync.Mutex
	registry   *material.Registry
	normalizer *Normalizer
	q          questionnaire.Questionnaire
	values     map[string]any
	submitting bool
	started    time.Time

	now func() time.Time
}

// NewCollector starts a session over a questionnaire. A nil registry falls
// back to the built-in defaults. The fill timer starts immediately.
func NewCollector(registry *material.Registry, q questionnaire.Questionnaire) *Collector {
	if registry == nil {
		registry = material.NewDefaultRegistry()
	}
	c := &Collector{
		registry:   registry,
		normalizer: NewNormalizer(registry),
		q:          q,
		values:     make(map[string]any),
		now:        time.Now,
	}
	c.started = c.now()
	for _, inst := range q.Active() {
		if !inst.Visible {
			continue
		}
		if desc, ok := registry.Lookup(inst.Type); ok && desc.Interactive && desc.Kind == material.ValueMulti {
			c.values[inst.InstanceID] = []any{}
		}
	}
	return c
}

// Set records the raw value for an instance.
func (c *Collector) Set(instanceID string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[instanceID] = value
}

// OnChangeFor returns the widget callback bound to one instance.
func (c *Collector) OnChangeFor(instanceID string) func(any) {
	return func(value any) {
		c.Set(instanceID, value)
	}
}

// Value returns the raw value for an instance, and whether one was recorded.
func (c *Collector) Value(instanceID string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[instanceID]
	return value, ok
}

// Values returns a copy of the raw value map.
func (c *Collector) Values() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.values))
	for key, value := range c.values {
		out[key] = value
	}
	return out
}

// CanSubmit reports whether every visible, interactive, required instance has
// a raw answer. Raw means pre-normalization: nil, absent, and empty string
// all fail the gate, as does an empty array.
func (c *Collector) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Collector) canSubmitLocked() bool {
	for _, inst := range c.q.Active() {
		if !inst.Visible {
			continue
		}
		desc, ok := c.registry.Lookup(inst.Type)
		if !ok || !desc.Interactive {
			continue
		}
		if !requiredOf(desc, inst) {
			continue
		}
		raw, present := c.values[inst.InstanceID]
		if !present || raw == nil || raw == "" {
			return false
		}
		if list, isList := asSlice(raw); isList && len(list) == 0 {
			return false
		}
	}
	return true
}

// Submitting reports whether a submission is currently outstanding.
func (c *Collector) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit normalizes the session and hands the record to the sink. Submission
// is refused while another attempt is in flight or while required answers are
// missing. A sink failure leaves the value map untouched so the respondent
// can correct and resubmit.
func (c *Collector) Submit(ctx context.Context, sink Sink) (SubmissionRecord, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return SubmissionRecord{}, ErrSubmitInFlight
	}
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return SubmissionRecord{}, ErrIncomplete
	}

	now := c.now()
	record := SubmissionRecord{
		QuestionID:         c.q.ID,
		Entries:            c.normalizer.Normalize(c.q, c.values),
		ElapsedFillSeconds: int64(now.Sub(c.started) / time.Second),
		SubmittedAt:        now,
	}
	c.submitting = true
	c.mu.Unlock()

	err := sink.SubmitAnswers(ctx, record)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		return SubmissionRecord{}, err
	}
	return record, nil
}

// requiredOf resolves the required flag from live props with descriptor
// defaults as fallback.
func requiredOf(desc material.Descriptor, inst questionnaire.Instance) bool {
	if _, ok := inst.Props["required"]; ok {
		return inst.Props.Required()
	}
	return desc.DefaultProps.Required()
}
