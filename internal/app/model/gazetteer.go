package model

// Option is one entry of an enumerated address select.
type Option struct {
	Code  int
	Label string
}

// Gazetteer holds the enumerated province/city/neighborhood codes and their
// human-readable labels.
type Gazetteer struct {
	Provinces     []Option
	Cities        []Option
	Neighborhoods []Option
}

func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		Provinces: []Option{
			{Code: 1, Label: "تهران"},
			{Code: 2, Label: "البرز"},
			{Code: 3, Label: "اصفهان"},
		},
		Cities: []Option{
			{Code: 1, Label: "تهران"},
			{Code: 2, Label: "کرج"},
			{Code: 3, Label: "اسلامشهر"},
		},
		Neighborhoods: []Option{
			{Code: 1, Label: "سعادت آباد"},
			{Code: 2, Label: "شهرک غرب"},
			{Code: 3, Label: "پونک"},
		},
	}
}

func lookup(options []Option, code int) string {
	for _, o := range options {
		if o.Code == code {
			return o.Label
		}
	}
	return ""
}

func (g Gazetteer) ProvinceLabel(code int) string     { return lookup(g.Provinces, code) }
func (g Gazetteer) CityLabel(code int) string         { return lookup(g.Cities, code) }
func (g Gazetteer) NeighborhoodLabel(code int) string { return lookup(g.Neighborhoods, code) }
