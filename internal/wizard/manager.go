package wizard

import "github.com/milicode/gym-panel/internal/app/model"

const (
	MobileLength       = 11
	NationalCodeLength = 10
)

type ManagerForm struct {
	FirstName    string
	LastName     string
	Mobile       string
	NationalCode string

	Errors FieldErrors
}

func NewManagerForm(d model.Draft) *ManagerForm {
	return &ManagerForm{
		FirstName:    d.Manager.FirstName,
		LastName:     d.Manager.LastName,
		Mobile:       d.Manager.Mobile,
		NationalCode: d.Manager.NationalCode,
		Errors:       FieldErrors{},
	}
}

// Change rejects, rather than strips, non-digit or overlong input for the
// numeric fields: the stored value stays as it was and false is returned.
func (f *ManagerForm) Change(field, value string) bool {
	switch field {
	case "firstName":
		f.FirstName = value
	case "lastName":
		f.LastName = value
	case "mobile":
		if !isDigits(value) || len(value) > MobileLength {
			return false
		}
		f.Mobile = value
	case "nationalCode":
		if !isDigits(value) || len(value) > NationalCodeLength {
			return false
		}
		f.NationalCode = value
	default:
		return false
	}
	f.Errors.Clear(field)
	return true
}

func (f *ManagerForm) Validate() bool {
	errs := FieldErrors{}
	if blank(f.FirstName) {
		errs["firstName"] = "نام الزامی است"
	}
	if blank(f.LastName) {
		errs["lastName"] = "نام خانوادگی الزامی است"
	}
	if msg := fixedDigits(f.Mobile, MobileLength, "شماره موبایل الزامی است", "شماره موبایل باید ۱۱ رقم باشد"); msg != "" {
		errs["mobile"] = msg
	}
	if msg := fixedDigits(f.NationalCode, NationalCodeLength, "کد ملی الزامی است", "کد ملی باید ۱۰ رقم باشد"); msg != "" {
		errs["nationalCode"] = msg
	}
	f.Errors = errs
	return !errs.HasErrors()
}

func (f *ManagerForm) Manager() model.Manager {
	return model.Manager{
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Mobile:       f.Mobile,
		NationalCode: f.NationalCode,
	}
}
