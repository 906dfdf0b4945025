package wizard

import (
	"fmt"
	"strconv"
)

// Actions posted next to a step form.
const (
	ActionRegenerate = "regenerate"
	ActionReset      = "reset"
)

// Form is implemented by the step form mirrors.
type Form interface {
	Validate() bool
	fieldErrors() FieldErrors
}

func (f *InformationForm) fieldErrors() FieldErrors { return f.Errors }
func (f *ManagerForm) fieldErrors() FieldErrors     { return f.Errors }
func (f *AddressForm) fieldErrors() FieldErrors     { return f.Errors }
func (f *LocationForm) fieldErrors() FieldErrors    { return f.Errors }

// Check validates f and lays the rejected-input messages from a Bind call
// over the validation result.
func Check(f Form, rejected FieldErrors) bool {
	ok := f.Validate()
	errs := f.fieldErrors()
	for field, msg := range rejected {
		errs[field] = msg
		ok = false
	}
	return ok
}

// Step inputs are bound from the posted form. A nil field was absent from
// the post and leaves the form value as it was.

type InformationInput struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Phone       *string `form:"phone"`
	Area        *string `form:"area"`
	BranchName  *string `form:"branchName"`
	// an unchecked checkbox is absent from the post
	HasAnotherBranch string `form:"hasAnotherBranch"`
}

type ManagerInput struct {
	FirstName    *string `form:"firstName"`
	LastName     *string `form:"lastName"`
	Mobile       *string `form:"mobile"`
	NationalCode *string `form:"nationalCode"`
}

// AddressInput carries, besides the fields, the auto flag and the full
// address the page rendered (FullAddressSeen).
type AddressInput struct {
	Province     *string `form:"province"`
	City         *string `form:"city"`
	Neighborhood *string `form:"neighborhood"`
	MainStreet   *string `form:"mainStreet"`
	Street       *string `form:"street"`
	Alley        *string `form:"alley"`
	Flat         *string `form:"flat"`
	PostalCode   *string `form:"postalCode"`

	FullAddress     *string `form:"fullAddress"`
	FullAddressSeen string  `form:"fullAddressSeen"`
	AutoFullAddress *string `form:"autoFullAddress"`
	Action          string  `form:"action"`
}

type LocationInput struct {
	Lng    string `form:"lng"`
	Lat    string `form:"lat"`
	Action string `form:"action"`
}

type changer interface {
	Change(field, value string) bool
}

type posted struct {
	name  string
	value *string
}

func bindFields(f changer, fields ...posted) FieldErrors {
	rejected := FieldErrors{}
	for _, p := range fields {
		if p.value == nil {
			continue
		}
		if !f.Change(p.name, *p.value) {
			rejected[p.name] = rejectionMessage(p.name, *p.value)
		}
	}
	return rejected
}

var maxDigits = map[string]int{
	"mobile":       MobileLength,
	"nationalCode": NationalCodeLength,
	"postalCode":   PostalCodeLength,
}

// rejectionMessage explains why Change refused value for field.
func rejectionMessage(field, value string) string {
	switch field {
	case "area":
		return msgAreaInteger
	case "province", "city", "neighborhood":
		return msgUnknownOption
	}
	if limit, ok := maxDigits[field]; ok && isDigits(value) && len(value) > limit {
		return fmt.Sprintf(msgTooManyDigits, limit)
	}
	return msgDigitsOnly
}

func (f *InformationForm) Bind(in InformationInput) FieldErrors {
	rejected := bindFields(f,
		posted{"name", in.Name},
		posted{"description", in.Description},
		posted{"phone", in.Phone},
		posted{"area", in.Area},
		posted{"branchName", in.BranchName},
	)
	f.Change("hasAnotherBranch", in.HasAnotherBranch)
	return rejected
}

func (f *ManagerForm) Bind(in ManagerInput) FieldErrors {
	return bindFields(f,
		posted{"firstName", in.FirstName},
		posted{"lastName", in.LastName},
		posted{"mobile", in.Mobile},
		posted{"nationalCode", in.NationalCode},
	)
}

// Bind applies a posted address form. A posted fullAddress that differs from
// the rendered one is a manual edit.
func (f *AddressForm) Bind(in AddressInput) FieldErrors {
	if in.AutoFullAddress != nil {
		f.Auto = *in.AutoFullAddress == "on"
	}
	if in.FullAddress != nil {
		switch {
		case *in.FullAddress != in.FullAddressSeen:
			f.Change("fullAddress", *in.FullAddress)
		case !f.Auto:
			f.FullAddress = *in.FullAddress
		}
	}

	rejected := bindFields(f,
		posted{"province", in.Province},
		posted{"city", in.City},
		posted{"neighborhood", in.Neighborhood},
		posted{"mainStreet", in.MainStreet},
		posted{"street", in.Street},
		posted{"alley", in.Alley},
		posted{"flat", in.Flat},
		posted{"postalCode", in.PostalCode},
	)

	if in.Action == ActionRegenerate {
		f.SetAuto(true)
	}
	return rejected
}

// Bind moves the selection to the posted point. Unparseable coordinates
// leave the selection where it was and are reported under "location".
func (f *LocationForm) Bind(in LocationInput) FieldErrors {
	lng, lngErr := strconv.ParseFloat(in.Lng, 64)
	lat, latErr := strconv.ParseFloat(in.Lat, 64)
	if lngErr != nil || latErr != nil {
		return FieldErrors{"location": msgBadCoordinates}
	}
	f.Click(lng, lat)
	return FieldErrors{}
}
