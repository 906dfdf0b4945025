package service

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/xuri/excelize/v2"
)

const branchSheet = "Branches"

var exportHeaders = []string{
	"شناسه", "نام", "نام شعبه", "تلفن", "متراژ", "مدیر", "موبایل مدیر",
	"آدرس کامل", "کد پستی", "طول جغرافیایی", "عرض جغرافیایی", "تکمیل شده",
}

// WriteBranchesXLSX writes one row per branch under a header row.
func WriteBranchesXLSX(w io.Writer, branches []model.Branch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), branchSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(branchSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range branches {
		row := branchRow(b)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(branchSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func branchRow(b model.Branch) []interface{} {
	var area interface{} = ""
	if b.Area != nil {
		area = *b.Area
	}

	var managerName, managerMobile string
	if b.Manager != nil {
		managerName = strings.TrimSpace(b.Manager.FirstName + " " + b.Manager.LastName)
		managerMobile = b.Manager.Mobile
	}

	var fullAddress, postalCode string
	if b.Address != nil {
		fullAddress = b.Address.FullAddress
		postalCode = b.Address.PostalCode
	}

	var lng, lat interface{} = "", ""
	if b.HasLocation() {
		lng = b.Location.Coordinates.Longitude()
		lat = b.Location.Coordinates.Latitude()
	}

	completed := "خیر"
	if b.CompletedData {
		completed = "بله"
	}

	return []interface{}{
		b.ID.String(), b.Name, b.BranchName, b.Phone, area, managerName, managerMobile,
		fullAddress, postalCode, lng, lat, completed,
	}
}

// importColumns is the column order ReadRegistrationsXLSX expects after the
// header row. Province, city and neighborhood are gazetteer codes.
var importColumns = []string{
	"name", "description", "branchName", "phone", "area",
	"firstName", "lastName", "mobile", "nationalCode",
	"province", "city", "neighborhood", "mainStreet", "street", "alley", "flat", "fullAddress", "postalCode",
	"longitude", "latitude",
}

// WriteImportTemplateXLSX writes an empty import sheet holding only the
// header row ReadRegistrationsXLSX skips.
func WriteImportTemplateXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(importColumns))
	for i, c := range importColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return f.Write(w)
}

// RowError is a rejected import row with its per-field messages.
type RowError struct {
	Row    int
	Errors wizard.FieldErrors
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: invalid %s", e.Row, e.Errors.String())
}

// ReadRegistrationsXLSX parses a bulk registration sheet. Each row is run
// through the same step forms the wizard uses; rows that fail are returned
// as RowErrors and left out of the result.
func ReadRegistrationsXLSX(r io.Reader, g model.Gazetteer) ([]model.Registration, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var regs []model.Registration
	var rejected []RowError
	// first row is the header
	for i, row := range rows[1:] {
		values := url.Values{}
		for col, name := range importColumns {
			if col < len(row) {
				values.Set(name, strings.TrimSpace(row[col]))
			}
		}

		reg, errs := registrationFromRow(values, g)
		if errs.HasErrors() {
			rejected = append(rejected, RowError{Row: i + 2, Errors: errs})
			continue
		}
		regs = append(regs, reg)
	}
	return regs, rejected, nil
}

// cell is the value of a sheet column, nil when the row is too short to
// have it.
func cell(values url.Values, name string) *string {
	if !values.Has(name) {
		return nil
	}
	v := values.Get(name)
	return &v
}

func registrationFromRow(values url.Values, g model.Gazetteer) (model.Registration, wizard.FieldErrors) {
	errs := wizard.FieldErrors{}
	merge := func(fe wizard.FieldErrors) {
		for k, v := range fe {
			errs[k] = v
		}
	}

	d := model.NewDraft()

	info := wizard.NewInformationForm(d)
	infoInput := wizard.InformationInput{
		Name:        cell(values, "name"),
		Description: cell(values, "description"),
		Phone:       cell(values, "phone"),
		Area:        cell(values, "area"),
		BranchName:  cell(values, "branchName"),
	}
	if values.Get("branchName") != "" {
		infoInput.HasAnotherBranch = "on"
	}
	wizard.Check(info, info.Bind(infoInput))
	merge(info.Errors)

	manager := wizard.NewManagerForm(d)
	wizard.Check(manager, manager.Bind(wizard.ManagerInput{
		FirstName:    cell(values, "firstName"),
		LastName:     cell(values, "lastName"),
		Mobile:       cell(values, "mobile"),
		NationalCode: cell(values, "nationalCode"),
	}))
	merge(manager.Errors)

	address := wizard.NewAddressForm(g, d.Address)
	addressInput := wizard.AddressInput{
		Province:     cell(values, "province"),
		City:         cell(values, "city"),
		Neighborhood: cell(values, "neighborhood"),
		MainStreet:   cell(values, "mainStreet"),
		Street:       cell(values, "street"),
		Alley:        cell(values, "alley"),
		Flat:         cell(values, "flat"),
		PostalCode:   cell(values, "postalCode"),
	}
	// a blank fullAddress column means "compose it"
	if values.Get("fullAddress") == "" {
		addressInput.Action = wizard.ActionRegenerate
	} else {
		addressInput.FullAddress = cell(values, "fullAddress")
	}
	wizard.Check(address, address.Bind(addressInput))
	merge(address.Errors)

	// the row starts from the default point, so like the map step it must
	// name a different one
	location := wizard.NewLocationForm(d)
	wizard.Check(location, location.Bind(wizard.LocationInput{
		Lng: values.Get("longitude"),
		Lat: values.Get("latitude"),
	}))
	merge(location.Errors)

	d = wizard.Reduce(d,
		wizard.SetProject(info.Patch()),
		wizard.SetManager(manager.Manager()),
		wizard.SetAddress(address.Address),
		wizard.SetLocation(location.Location()),
	)
	return d.Registration, errs
}
