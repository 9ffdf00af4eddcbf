package questionnaire

import (
	"fmt"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
)

// Instance is one placed, configured occurrence of a component type. The type
// identifier is fixed for the instance's lifetime; props are mutated only
// through the type's property editor.
type Instance struct {
	InstanceID string           `json:"instanceId" yaml:"instanceId"`
	Type       material.Type    `json:"type" yaml:"type"`
	Props      material.PropMap `json:"props,omitempty" yaml:"props,omitempty"`
	Visible    bool             `json:"visible" yaml:"visible"`

	// Removed marks a soft, undoable canvas deletion. Removed instances are
	// dropped when the definition is persisted.
	Removed bool `json:"-" yaml:"-"`
}

// Questionnaire is one form definition.
type Questionnaire struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Instances   []Instance `json:"instances" yaml:"instances"`
}

// Add appends an instance to the canvas. Instance identifiers are
// author-assigned and never reused within one questionnaire.
func (q *Questionnaire) Add(inst Instance) error {
	if inst.InstanceID == "" {
		return fmt.Errorf("questionnaire: instance id is required")
	}
	if inst.Type == "" {
		return fmt.Errorf("questionnaire: instance %q has no type", inst.InstanceID)
	}
	for _, existing := range q.Instances {
		if existing.InstanceID == inst.InstanceID {
			return fmt.Errorf("questionnaire: instance id %q already used", inst.InstanceID)
		}
	}
	q.Instances = append(q.Instances, inst)
	return nil
}

// Find returns a pointer to the instance with the given id, or nil.
func (q *Questionnaire) Find(instanceID string) *Instance {
	for idx := range q.Instances {
		if q.Instances[idx].InstanceID == instanceID {
			return &q.Instances[idx]
		}
	}
	return nil
}

// Remove soft-deletes an instance. The removal is undoable via Restore until
// the definition is persisted.
func (q *Questionnaire) Remove(instanceID string) bool {
	inst := q.Find(instanceID)
	if inst == nil {
		return false
	}
	inst.Removed = true
	return true
}

// Restore undoes a soft removal.
func (q *Questionnaire) Restore(instanceID string) bool {
	inst := q.Find(instanceID)
	if inst == nil || !inst.Removed {
		return false
	}
	inst.Removed = false
	return true
}

// SetProps replaces an instance's props. Only the property-editor surface
// calls this; the type identifier stays untouched.
func (q *Questionnaire) SetProps(instanceID string, props material.PropMap) error {
	inst := q.Find(instanceID)
	if inst == nil {
		return fmt.Errorf("questionnaire: instance %q not found", instanceID)
	}
	inst.Props = props.Clone()
	return nil
}

// SetVisible toggles respondent-facing visibility.
func (q *Questionnaire) SetVisible(instanceID string, visible bool) error {
	inst := q.Find(instanceID)
	if inst == nil {
		return fmt.Errorf("questionnaire: instance %q not found", instanceID)
	}
	inst.Visible = visible
	return nil
}

// Move shifts an instance up or down the canvas order by delta positions,
// clamping at either end.
func (q *Questionnaire) Move(instanceID string, delta int) error {
	from := -1
	for idx := range q.Instances {
		if q.Instances[idx].InstanceID == instanceID {
			from = idx
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("questionnaire: instance %q not found", instanceID)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to >= len(q.Instances) {
		to = len(q.Instances) - 1
	}
	inst := q.Instances[from]
	q.Instances = append(q.Instances[:from], q.Instances[from+1:]...)
	rest := append([]Instance{inst}, q.Instances[to:]...)
	q.Instances = append(q.Instances[:to], rest...)
	return nil
}

// Active returns the instances that survive a persist: everything not
// soft-removed, in canvas order.
func (q *Questionnaire) Active() []Instance {
	out := make([]Instance, 0, len(q.Instances))
	for _, inst := range q.Instances {
		if inst.Removed {
			continue
		}
		out = append(out, inst)
	}
	return out
}
