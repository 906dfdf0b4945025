package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/service"
	apperrors "github.com/milicode/gym-panel/internal/errors"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/views"
	"github.com/milicode/gym-panel/internal/wizard"
)

type WizardController struct {
	wizardService service.WizardService
	views         *views.Renderer
	gazetteer     model.Gazetteer
	stepGating    bool
}

func NewWizardController(wizardService service.WizardService, v *views.Renderer, gazetteer model.Gazetteer, stepGating bool) *WizardController {
	return &WizardController{
		wizardService: wizardService,
		views:         v,
		gazetteer:     gazetteer,
		stepGating:    stepGating,
	}
}

// load returns the session draft, or false after answering the request
// itself: an error page, or a redirect when step gating refuses the page.
func (ctrl *WizardController) load(c *gin.Context, step int) (string, model.Draft, bool) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	draft, err := ctrl.wizardService.Draft(c.Request.Context(), sessionID)
	if err != nil {
		log.Error("Failed to load draft", err)
		render(c, ctrl.views, http.StatusInternalServerError, views.PageError, views.Page{
			Title: "خطا",
			Error: "خطای داخلی سرور، لطفاً دوباره تلاش کنید",
		})
		return "", model.Draft{}, false
	}

	if to := wizard.Gate(ctrl.stepGating, step, draft); to != "" {
		log.Debug("Step gated", map[string]interface{}{
			"requested": step,
			"current":   draft.Step,
		})
		c.Redirect(http.StatusFound, to)
		return "", model.Draft{}, false
	}
	return sessionID, draft, true
}

// bindStep binds the posted step form into in. Field values are checked by
// the step form itself, so binding only fails on a malformed body.
func bindStep(c *gin.Context, in any) bool {
	if err := c.ShouldBind(in); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to bind step form", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "ورودی نامعتبر است")
		return false
	}
	return true
}

// saveFailed renders page again for a refused submit. Validation failures
// answer 422 with the field errors already on the form.
func (ctrl *WizardController) saveFailed(c *gin.Context, err error, context, page string, data func(views.Page) any, step int) {
	info := apperrors.ParseError(err, context)
	p := newPage(c, "", step)
	if !errors.Is(err, wizard.ErrInvalidForm) {
		middleware.GetLoggerFromContext(c).Error("Wizard step failed", err, map[string]interface{}{
			"page": page,
		})
		p.Error = info.Message
	}
	render(c, ctrl.views, info.Status, page, data(p))
}

// ShowInformation renders step 1
// GET /information
func (ctrl *WizardController) ShowInformation(c *gin.Context) {
	_, draft, ok := ctrl.load(c, wizard.StepInformation)
	if !ok {
		return
	}
	render(c, ctrl.views, http.StatusOK, views.PageInformation, views.InformationPage{
		Page: newPage(c, "اطلاعات باشگاه", draft.Step),
		Form: wizard.NewInformationForm(draft),
	})
}

// SubmitInformation saves step 1
// POST /information
func (ctrl *WizardController) SubmitInformation(c *gin.Context) {
	sessionID, draft, ok := ctrl.load(c, wizard.StepInformation)
	if !ok {
		return
	}
	var in wizard.InformationInput
	if !bindStep(c, &in) {
		return
	}

	form := wizard.NewInformationForm(draft)
	rejected := form.Bind(in)
	if _, err := ctrl.wizardService.SaveInformation(c.Request.Context(), sessionID, form, rejected); err != nil {
		ctrl.saveFailed(c, err, apperrors.ContextCreate, views.PageInformation, func(p views.Page) any {
			p.Title = "اطلاعات باشگاه"
			return views.InformationPage{Page: p, Form: form}
		}, draft.Step)
		return
	}
	seeOther(c, wizard.PathForStep(wizard.StepManager))
}

// ShowManager renders step 2
// GET /information/manager
func (ctrl *WizardController) ShowManager(c *gin.Context) {
	_, draft, ok := ctrl.load(c, wizard.StepManager)
	if !ok {
		return
	}
	render(c, ctrl.views, http.StatusOK, views.PageManager, ctrl.managerPage(newPage(c, "مدیر باشگاه", draft.Step), wizard.NewManagerForm(draft)))
}

func (ctrl *WizardController) managerPage(p views.Page, form *wizard.ManagerForm) views.ManagerPage {
	return views.ManagerPage{
		Page:               p,
		Form:               form,
		MobileLength:       wizard.MobileLength,
		NationalCodeLength: wizard.NationalCodeLength,
	}
}

// SubmitManager saves step 2
// POST /information/manager
func (ctrl *WizardController) SubmitManager(c *gin.Context) {
	sessionID, draft, ok := ctrl.load(c, wizard.StepManager)
	if !ok {
		return
	}
	var in wizard.ManagerInput
	if !bindStep(c, &in) {
		return
	}

	form := wizard.NewManagerForm(draft)
	rejected := form.Bind(in)
	if _, err := ctrl.wizardService.SaveManager(c.Request.Context(), sessionID, form, rejected); err != nil {
		ctrl.saveFailed(c, err, apperrors.ContextCreate, views.PageManager, func(p views.Page) any {
			p.Title = "مدیر باشگاه"
			return ctrl.managerPage(p, form)
		}, draft.Step)
		return
	}
	seeOther(c, wizard.PathForStep(wizard.StepAddress))
}

func (ctrl *WizardController) addressPage(p views.Page, form *wizard.AddressForm) views.AddressPage {
	return views.AddressPage{
		Page:             p,
		Form:             form,
		Gazetteer:        ctrl.gazetteer,
		PostalCodeLength: wizard.PostalCodeLength,
	}
}

// ShowAddress renders step 3
// GET /information/address
func (ctrl *WizardController) ShowAddress(c *gin.Context) {
	_, draft, ok := ctrl.load(c, wizard.StepAddress)
	if !ok {
		return
	}
	form := wizard.NewAddressForm(ctrl.gazetteer, draft.Address)
	render(c, ctrl.views, http.StatusOK, views.PageAddress, ctrl.addressPage(newPage(c, "نشانی", draft.Step), form))
}

// SubmitAddress saves step 3. action=regenerate only recomposes the full
// address and renders the page again.
// POST /information/address
func (ctrl *WizardController) SubmitAddress(c *gin.Context) {
	sessionID, draft, ok := ctrl.load(c, wizard.StepAddress)
	if !ok {
		return
	}
	var in wizard.AddressInput
	if !bindStep(c, &in) {
		return
	}

	form := wizard.NewAddressForm(ctrl.gazetteer, draft.Address)
	rejected := form.Bind(in)
	if in.Action == wizard.ActionRegenerate {
		for field, msg := range rejected {
			form.Errors[field] = msg
		}
		render(c, ctrl.views, http.StatusOK, views.PageAddress, ctrl.addressPage(newPage(c, "نشانی", draft.Step), form))
		return
	}

	if _, err := ctrl.wizardService.SaveAddress(c.Request.Context(), sessionID, form, rejected); err != nil {
		ctrl.saveFailed(c, err, apperrors.ContextCreate, views.PageAddress, func(p views.Page) any {
			p.Title = "نشانی"
			return ctrl.addressPage(p, form)
		}, draft.Step)
		return
	}
	seeOther(c, wizard.PathForStep(wizard.StepLocation))
}

// ShowLocation renders step 4
// GET /information/location
func (ctrl *WizardController) ShowLocation(c *gin.Context) {
	_, draft, ok := ctrl.load(c, wizard.StepLocation)
	if !ok {
		return
	}
	render(c, ctrl.views, http.StatusOK, views.PageLocation, views.LocationPage{
		Page: newPage(c, "موقعیت", draft.Step),
		Form: wizard.NewLocationForm(draft),
	})
}

// SubmitLocation creates the branch from the draft and the selected point.
// action=reset moves the selection back to the default point instead.
// POST /information/location
func (ctrl *WizardController) SubmitLocation(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID, draft, ok := ctrl.load(c, wizard.StepLocation)
	if !ok {
		return
	}

	var in wizard.LocationInput
	if !bindStep(c, &in) {
		return
	}

	form := wizard.NewLocationForm(draft)
	if in.Action == wizard.ActionReset {
		form.ResetPosition()
		render(c, ctrl.views, http.StatusOK, views.PageLocation, views.LocationPage{
			Page: newPage(c, "موقعیت", draft.Step),
			Form: form,
		})
		return
	}

	rejected := form.Bind(in)
	if rejected.HasErrors() {
		log.Warn("Unparseable map selection", map[string]interface{}{
			"lng": in.Lng,
			"lat": in.Lat,
		})
	}

	if err := ctrl.wizardService.SubmitLocation(c.Request.Context(), sessionID, form, rejected); err != nil {
		ctrl.saveFailed(c, err, apperrors.ContextCreate, views.PageLocation, func(p views.Page) any {
			p.Title = "موقعیت"
			return views.LocationPage{Page: p, Form: form}
		}, draft.Step)
		return
	}

	log.Info("Branch registration submitted", map[string]interface{}{
		"session_id": sessionID,
	})
	seeOther(c, "/?created=1")
}

// Back moves the step counter back one step and returns to the page before
// the one the form was posted from.
// POST /information/back
func (ctrl *WizardController) Back(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	draft, err := ctrl.wizardService.Back(c.Request.Context(), sessionID)
	if err != nil {
		log.Error("Failed to step back", err)
		apperrors.InternalError(c, "")
		return
	}

	target := wizard.PathForStep(draft.Step)
	if from, err := strconv.Atoi(c.PostForm("from")); err == nil && from > wizard.StepInformation {
		target = wizard.PathForStep(from - 1)
	}
	seeOther(c, target)
}
