package wizard

import "github.com/milicode/gym-panel/internal/app/model"

const (
	StepInformation = 1
	StepManager     = 2
	StepAddress     = 3
	StepLocation    = 4
)

var stepPaths = map[int]string{
	StepInformation: "/information",
	StepManager:     "/information/manager",
	StepAddress:     "/information/address",
	StepLocation:    "/information/location",
}

// PathForStep returns the page of a step. Counters past the last step map to
// the location page.
func PathForStep(step int) string {
	switch {
	case step < StepInformation:
		step = StepInformation
	case step > StepLocation:
		step = StepLocation
	}
	return stepPaths[step]
}

// Gate decides whether the page of a requested step may render. It returns
// the path to redirect to, or "" when the page is allowed. With gating off
// every step is reachable.
func Gate(enabled bool, requested int, d model.Draft) string {
	if !enabled || requested <= d.Step {
		return ""
	}
	return PathForStep(d.Step)
}

// Advance is the action list for a successful submit of step. The counter
// moves only when the step is the furthest one reached, so revisiting an
// earlier page does not push it past the pages actually completed.
func Advance(step int, d model.Draft, actions ...Action) []Action {
	if d.Step == step {
		actions = append(actions, NextStep{})
	}
	return actions
}
