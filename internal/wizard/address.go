package wizard

import (
	"strconv"
	"strings"

	"github.com/milicode/gym-panel/internal/app/model"
)

const (
	PostalCodeLength = 10

	// FullAddressSeparator joins the composed address parts.
	FullAddressSeparator = "، "
)

// ComposeFullAddress builds the labeled address line. Parts whose value is
// empty, including codes the gazetteer does not know, are skipped.
func ComposeFullAddress(g model.Gazetteer, a model.Address) string {
	parts := []struct{ label, value string }{
		{"استان", g.ProvinceLabel(a.Province)},
		{"شهر", g.CityLabel(a.City)},
		{"محله", g.NeighborhoodLabel(a.Neighborhood)},
		{"خیابان", a.MainStreet},
		{"کوچه", a.Street},
		{"بن‌بست", a.Alley},
		{"پلاک", a.Flat},
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p.value)
		if v == "" {
			continue
		}
		out = append(out, p.label+" "+v)
	}
	return strings.Join(out, FullAddressSeparator)
}

// AddressForm mirrors the address step. While Auto is set, every component
// change recomposes FullAddress; a direct FullAddress edit switches Auto off
// until SetAuto(true).
type AddressForm struct {
	model.Address
	Auto   bool
	Errors FieldErrors

	gazetteer model.Gazetteer
}

func NewAddressForm(g model.Gazetteer, a model.Address) *AddressForm {
	f := &AddressForm{
		Address:   a,
		Errors:    FieldErrors{},
		gazetteer: g,
	}
	f.Auto = a.FullAddress == "" || a.FullAddress == ComposeFullAddress(g, a)
	if f.Auto {
		f.FullAddress = ComposeFullAddress(g, a)
	}
	return f
}

func (f *AddressForm) Gazetteer() model.Gazetteer {
	return f.gazetteer
}

func (f *AddressForm) Change(field, value string) bool {
	recompose := true
	switch field {
	case "province", "city", "neighborhood":
		code, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return false
		}
		switch field {
		case "province":
			f.Province = code
		case "city":
			f.City = code
		default:
			f.Neighborhood = code
		}
	case "mainStreet":
		f.MainStreet = value
	case "street":
		f.Street = value
	case "alley":
		f.Alley = value
	case "flat":
		f.Flat = value
	case "postalCode":
		if !isDigits(value) || len(value) > PostalCodeLength {
			return false
		}
		f.PostalCode = value
		recompose = false
	case "fullAddress":
		f.FullAddress = value
		f.Auto = false
		recompose = false
	default:
		return false
	}
	f.Errors.Clear(field)
	if recompose && f.Auto {
		f.FullAddress = ComposeFullAddress(f.gazetteer, f.Address)
		f.Errors.Clear("fullAddress")
	}
	return true
}

func (f *AddressForm) SetAuto(on bool) {
	f.Auto = on
	if on {
		f.FullAddress = ComposeFullAddress(f.gazetteer, f.Address)
		f.Errors.Clear("fullAddress")
	}
}

func (f *AddressForm) Validate() bool {
	errs := FieldErrors{}
	if blank(f.MainStreet) {
		errs["mainStreet"] = "خیابان اصلی الزامی است"
	}
	if blank(f.Street) {
		errs["street"] = "خیابان الزامی است"
	}
	if blank(f.FullAddress) {
		errs["fullAddress"] = "آدرس کامل الزامی است"
	}
	if msg := fixedDigits(f.PostalCode, PostalCodeLength, "کد پستی الزامی است", "کد پستی باید ۱۰ رقم باشد"); msg != "" {
		errs["postalCode"] = msg
	}
	f.Errors = errs
	return !errs.HasErrors()
}
