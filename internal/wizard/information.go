package wizard

import (
	"strconv"
	"strings"

	"github.com/milicode/gym-panel/internal/app/model"
)

// InformationForm mirrors the basic-info step.
type InformationForm struct {
	Name        string
	Description string
	BranchName  string
	Phone       string
	Area        int
	// HasAnotherBranch makes BranchName mandatory.
	HasAnotherBranch bool

	Errors FieldErrors
}

func NewInformationForm(d model.Draft) *InformationForm {
	return &InformationForm{
		Name:             d.Name,
		Description:      d.Description,
		BranchName:       d.BranchName,
		Phone:            d.Phone,
		Area:             d.Area,
		HasAnotherBranch: d.BranchName != "",
		Errors:           FieldErrors{},
	}
}

// Change updates one field and clears its error. It returns false when the
// field is unknown or the value is rejected.
func (f *InformationForm) Change(field, value string) bool {
	switch field {
	case "name":
		f.Name = value
	case "description":
		f.Description = value
	case "branchName":
		f.BranchName = value
	case "phone":
		f.Phone = value
	case "area":
		value = strings.TrimSpace(value)
		if value == "" {
			f.Area = 0
			break
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		f.Area = n
	case "hasAnotherBranch":
		f.HasAnotherBranch = value == "on" || value == "true" || value == "1"
		if !f.HasAnotherBranch {
			f.Errors.Clear("branchName")
		}
	default:
		return false
	}
	f.Errors.Clear(field)
	return true
}

func (f *InformationForm) Validate() bool {
	errs := FieldErrors{}
	if blank(f.Name) {
		errs["name"] = msgRequired
	}
	if blank(f.Description) {
		errs["description"] = msgRequired
	}
	if blank(f.Phone) {
		errs["phone"] = msgRequired
	}
	if f.Area <= 0 {
		errs["area"] = msgAreaPositive
	}
	if f.HasAnotherBranch && blank(f.BranchName) {
		errs["branchName"] = msgRequired
	}
	f.Errors = errs
	return !errs.HasErrors()
}

// Patch is the merge applied to the draft on success. Without the
// another-branch flag the branch name is cleared.
func (f *InformationForm) Patch() ProjectPatch {
	branchName := f.BranchName
	if !f.HasAnotherBranch {
		branchName = ""
	}
	name, description, phone, area := f.Name, f.Description, f.Phone, f.Area
	return ProjectPatch{
		Name:        &name,
		Description: &description,
		BranchName:  &branchName,
		Phone:       &phone,
		Area:        &area,
	}
}
