package model

// Tehran city centre, longitude first.
const (
	DefaultLongitude = 51.389
	DefaultLatitude  = 35.6892
)

// LocationTypePoint is the only GeoJSON geometry the API accepts.
const LocationTypePoint = "Point"

type Manager struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Mobile       string `json:"mobile"`       // 11 digits
	NationalCode string `json:"nationalCode"` // 10 digits
}

type Address struct {
	Province     int    `json:"province"`
	City         int    `json:"city"`
	Neighborhood int    `json:"neighborhood"`
	MainStreet   string `json:"mainStreet"`
	Street       string `json:"street"`
	Alley        string `json:"alley"`
	Flat         string `json:"flat"`
	FullAddress  string `json:"fullAddress"`
	PostalCode   string `json:"postalCode"` // 10 digits
}

// Coordinates is a [longitude, latitude] pair.
type Coordinates [2]float64

func (c Coordinates) Longitude() float64 { return c[0] }
func (c Coordinates) Latitude() float64  { return c[1] }

type Location struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

// Registration is the body sent to the branch creation endpoint.
type Registration struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BranchName  string   `json:"branchName"`
	Phone       string   `json:"phone"`
	Area        int      `json:"area"`
	Manager     Manager  `json:"manager"`
	Address     Address  `json:"address"`
	Location    Location `json:"location"`
}

// Draft is the registration being assembled across the wizard steps.
type Draft struct {
	Registration
	Step int `json:"step"`
}

func DefaultAddress() Address {
	return Address{Province: 1, City: 1, Neighborhood: 1}
}

func DefaultLocation() Location {
	return Location{
		Type:        LocationTypePoint,
		Coordinates: Coordinates{DefaultLongitude, DefaultLatitude},
	}
}

// NewDraft returns a draft with every field at its default and step 1.
func NewDraft() Draft {
	return Draft{
		Registration: Registration{
			Address:  DefaultAddress(),
			Location: DefaultLocation(),
		},
		Step: 1,
	}
}
