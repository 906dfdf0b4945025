package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString accepts a JSON string, number or boolean and keeps its text form.
// The branch API is not consistent about identifier and code types.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatBool(b))
	return nil
}

func (f FlexString) String() string { return string(f) }

// Facilities is the fixed amenity checklist of a branch.
type Facilities struct {
	HasCafe          bool `json:"hasCafe"`
	HasWC            bool `json:"hasWC"`
	HasShower        bool `json:"hasShower"`
	HasSwimmingPool  bool `json:"hasSwimmingPool"`
	HasJacuzzi       bool `json:"hasJacuzzi"`
	HasColdPool      bool `json:"hasColdPool"`
	HasLaundry       bool `json:"hasLaundry"`
	HasLockerRoom    bool `json:"hasLockerRoom"`
	HasPrivateLocker bool `json:"hasPrivateLocker"`
}

// FacilitiesUpdate is the body of the facilities PUT.
type FacilitiesUpdate struct {
	BranchID string `json:"branchId"`
	Facilities
}

// FacilityItem pairs a checklist flag with its form key and label.
type FacilityItem struct {
	Key   string
	Label string
	Value bool
}

// Items lists the flags in display order.
func (f Facilities) Items() []FacilityItem {
	return []FacilityItem{
		{Key: "hasCafe", Label: "کافه", Value: f.HasCafe},
		{Key: "hasWC", Label: "سرویس بهداشتی", Value: f.HasWC},
		{Key: "hasShower", Label: "دوش", Value: f.HasShower},
		{Key: "hasSwimmingPool", Label: "استخر", Value: f.HasSwimmingPool},
		{Key: "hasJacuzzi", Label: "جکوزی", Value: f.HasJacuzzi},
		{Key: "hasColdPool", Label: "حوضچه آب سرد", Value: f.HasColdPool},
		{Key: "hasLaundry", Label: "خشکشویی", Value: f.HasLaundry},
		{Key: "hasLockerRoom", Label: "رختکن", Value: f.HasLockerRoom},
		{Key: "hasPrivateLocker", Label: "کمد اختصاصی", Value: f.HasPrivateLocker},
	}
}

// Set flips the flag named by key. Unknown keys are ignored.
func (f *Facilities) Set(key string, value bool) bool {
	switch key {
	case "hasCafe":
		f.HasCafe = value
	case "hasWC":
		f.HasWC = value
	case "hasShower":
		f.HasShower = value
	case "hasSwimmingPool":
		f.HasSwimmingPool = value
	case "hasJacuzzi":
		f.HasJacuzzi = value
	case "hasColdPool":
		f.HasColdPool = value
	case "hasLaundry":
		f.HasLaundry = value
	case "hasLockerRoom":
		f.HasLockerRoom = value
	case "hasPrivateLocker":
		f.HasPrivateLocker = value
	default:
		return false
	}
	return true
}

type BranchAddress struct {
	ID           FlexString `json:"id"`
	Province     FlexString `json:"province"`
	City         FlexString `json:"city"`
	Neighborhood FlexString `json:"neighborhood"`
	MainStreet   string     `json:"mainStreet"`
	Street       string     `json:"street"`
	Alley        string     `json:"alley"`
	Flat         string     `json:"flat"`
	FullAddress  string     `json:"fullAddress"`
	PostalCode   string     `json:"postalCode"`
}

type Media struct {
	Image string `json:"image"`
	Video string `json:"video"`
}

type Sport struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Video       string `json:"video"`
}

type Equipment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Branch is the read-only projection returned by the API.
type Branch struct {
	ID            FlexString     `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	BranchName    string         `json:"branchName"`
	Phone         string         `json:"phone"`
	Area          *float64       `json:"area"`
	CompletedData bool           `json:"complitedData"`
	Manager       *Manager       `json:"manager"`
	Address       *BranchAddress `json:"address"`
	Location      *Location      `json:"location"`
	Facilities    *Facilities    `json:"facilities"`
	Media         []Media        `json:"media"`
	Sports        []Sport        `json:"sports"`
	Equipments    []Equipment    `json:"equipments"`
}

// HasLocation reports whether the projection carries a usable point.
func (b *Branch) HasLocation() bool {
	return b.Location != nil && b.Location.Coordinates != (Coordinates{})
}
