package viewer

import (
	"time"

	"github.com/Faultbox/showroom/internal/model"
)

// Animation drives one node axis from From to To.
type Animation struct {
	Node     *model.Node
	Axis     model.Axis
	From     float32
	To       float32
	Start    time.Time
	Duration time.Duration
	Ease     EaseFunc
}

// Progress returns the linear progress at now, clamped to [0, 1].
func (a *Animation) Progress(now time.Time) float32 {
	if a.Duration <= 0 {
		return 1
	}
	p := float32(now.Sub(a.Start)) / float32(a.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Value returns the eased angle at now.
func (a *Animation) Value(now time.Time) float32 {
	p := a.Progress(now)
	ease := a.Ease
	if ease == nil {
		ease = EaseInOutQuad
	}
	if p >= 1 {
		return a.To
	}
	return a.From + (a.To-a.From)*ease(p)
}

type animKey struct {
	node *model.Node
	axis model.Axis
}

// Animator owns the running animations. A new animation on a node axis
// that is already animating replaces the old one, starting from the
// node's current angle.
type Animator struct {
	tasks []*Animation
}

// Start begins animating node's axis toward to and returns the task.
func (a *Animator) Start(node *model.Node, axis model.Axis, to float32, now time.Time, d time.Duration) *Animation {
	a.cancel(animKey{node, axis})
	anim := &Animation{
		Node:     node,
		Axis:     axis,
		From:     node.Angle(axis),
		To:       to,
		Start:    now,
		Duration: d,
		Ease:     EaseInOutQuad,
	}
	a.tasks = append(a.tasks, anim)
	return anim
}

func (a *Animator) cancel(k animKey) {
	kept := a.tasks[:0]
	for _, t := range a.tasks {
		if t.Node != k.node || t.Axis != k.axis {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(a.tasks); i++ {
		a.tasks[i] = nil
	}
	a.tasks = kept
}

// Advance applies every task once and drops finished ones.
func (a *Animator) Advance(now time.Time) {
	kept := a.tasks[:0]
	for _, t := range a.tasks {
		t.Node.SetAngle(t.Axis, t.Value(now))
		if t.Progress(now) < 1 {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(a.tasks); i++ {
		a.tasks[i] = nil
	}
	a.tasks = kept
}

// Active returns the number of running animations.
func (a *Animator) Active() int {
	return len(a.tasks)
}
