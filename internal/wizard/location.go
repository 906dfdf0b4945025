package wizard

import (
	"math"

	"github.com/milicode/gym-panel/internal/app/model"
)

// PositionTolerance is the per-axis distance under which two points count as
// the same selection.
const PositionTolerance = 1e-6

func PositionChanged(a, b model.Coordinates) bool {
	return math.Abs(a.Longitude()-b.Longitude()) > PositionTolerance ||
		math.Abs(a.Latitude()-b.Latitude()) > PositionTolerance
}

// LocationForm tracks the map selection against the point the page was
// loaded with.
type LocationForm struct {
	Initial  model.Coordinates
	Selected model.Coordinates
	Errors   FieldErrors
}

func NewLocationForm(d model.Draft) *LocationForm {
	return &LocationForm{
		Initial:  d.Location.Coordinates,
		Selected: d.Location.Coordinates,
		Errors:   FieldErrors{},
	}
}

func (f *LocationForm) Click(lng, lat float64) {
	f.Selected = model.Coordinates{lng, lat}
	f.Errors.Clear("location")
}

// ResetPosition puts the selection back on the default point.
func (f *LocationForm) ResetPosition() {
	f.Selected = model.DefaultLocation().Coordinates
	f.Errors.Clear("location")
}

func (f *LocationForm) Changed() bool {
	return PositionChanged(f.Initial, f.Selected)
}

func (f *LocationForm) Validate() bool {
	errs := FieldErrors{}
	if !f.Changed() {
		errs["location"] = msgPickLocation
	}
	f.Errors = errs
	return !errs.HasErrors()
}

func (f *LocationForm) Location() model.Location {
	return model.Location{Type: model.LocationTypePoint, Coordinates: f.Selected}
}
