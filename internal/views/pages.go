package views

import (
	"html/template"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/wizard"
)

// Page names.
const (
	PageHome           = "home.html"
	PageInformation    = "information.html"
	PageManager        = "manager.html"
	PageAddress        = "address.html"
	PageLocation       = "location.html"
	PageBranchDetail   = "branch_detail.html"
	PageBranchComplete = "branch_complete.html"
	PageNotFound       = "not_found.html"
	PageError          = "error.html"
)

// Page is the part every page shares with the layout.
type Page struct {
	Title     string
	CSRFField template.HTML
	// Step is the session draft's step, shown in the header.
	Step   int
	Notice string
	Error  string
}

type HomePage struct {
	Page
	Branches []model.Branch
}

type InformationPage struct {
	Page
	Form *wizard.InformationForm
}

type ManagerPage struct {
	Page
	Form               *wizard.ManagerForm
	MobileLength       int
	NationalCodeLength int
}

type AddressPage struct {
	Page
	Form             *wizard.AddressForm
	Gazetteer        model.Gazetteer
	PostalCodeLength int
}

type LocationPage struct {
	Page
	Form *wizard.LocationForm
}

type BranchDetailPage struct {
	Page
	ID     string
	Branch *model.Branch
}

type BranchCompletePage struct {
	Page
	ID         string
	Facilities model.Facilities
	MediaError string
}
