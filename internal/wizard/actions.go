// Package wizard holds the branch registration wizard: the draft reducer, the
// per-step form mirrors with their validation rules, and step navigation.
//
// Nothing here performs I/O. Callers load a draft, run forms against it, and
// dispatch the resulting actions through Reduce.
package wizard

import "github.com/milicode/gym-panel/internal/app/model"

// Action is a single state transition of a draft.
type Action interface {
	Kind() string
	apply(d model.Draft) model.Draft
}

// ProjectPatch carries the top-level fields to merge; nil means untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
	BranchName  *string
	Phone       *string
	Area        *int
}

type (
	SetProject  ProjectPatch
	SetManager  model.Manager
	SetAddress  model.Address
	SetLocation model.Location
	NextStep    struct{}
	PrevStep    struct{}
	Reset       struct{}
)

func (SetProject) Kind() string  { return "set_project" }
func (SetManager) Kind() string  { return "set_manager" }
func (SetAddress) Kind() string  { return "set_address" }
func (SetLocation) Kind() string { return "set_location" }
func (NextStep) Kind() string    { return "next_step" }
func (PrevStep) Kind() string    { return "prev_step" }
func (Reset) Kind() string       { return "reset" }

func (a SetProject) apply(d model.Draft) model.Draft {
	if a.Name != nil {
		d.Name = *a.Name
	}
	if a.Description != nil {
		d.Description = *a.Description
	}
	if a.BranchName != nil {
		d.BranchName = *a.BranchName
	}
	if a.Phone != nil {
		d.Phone = *a.Phone
	}
	if a.Area != nil {
		d.Area = *a.Area
	}
	return d
}

func (a SetManager) apply(d model.Draft) model.Draft {
	d.Manager = model.Manager(a)
	return d
}

func (a SetAddress) apply(d model.Draft) model.Draft {
	d.Address = model.Address(a)
	return d
}

func (a SetLocation) apply(d model.Draft) model.Draft {
	d.Location = model.Location(a)
	return d
}

func (NextStep) apply(d model.Draft) model.Draft {
	d.Step++
	return d
}

// PrevStep stops at the first step.
func (PrevStep) apply(d model.Draft) model.Draft {
	if d.Step > 1 {
		d.Step--
	}
	return d
}

func (Reset) apply(model.Draft) model.Draft {
	return model.NewDraft()
}

// Reduce applies actions in order and returns the new draft. The input is not
// modified.
func Reduce(d model.Draft, actions ...Action) model.Draft {
	for _, a := range actions {
		d = a.apply(d)
	}
	return d
}

// ActionNames is used for logging dispatched batches.
func ActionNames(actions []Action) []string {
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		names = append(names, a.Kind())
	}
	return names
}
