package controller

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func informationValues() url.Values {
	return url.Values{
		"name":        {"باشگاه آفتاب"},
		"description": {"سالن بدنسازی"},
		"phone":       {"02144445555"},
		"area":        {"320"},
	}
}

func managerValues() url.Values {
	return url.Values{
		"firstName":    {"سارا"},
		"lastName":     {"کریمی"},
		"mobile":       {"09351112233"},
		"nationalCode": {"0012345678"},
	}
}

func addressValues(env *testEnv) url.Values {
	seen := wizard.NewAddressForm(model.DefaultGazetteer(), model.DefaultAddress()).FullAddress
	return url.Values{
		"autoFullAddress": {"on"},
		"fullAddressSeen": {seen},
		"fullAddress":     {seen},
		"province":        {"1"},
		"city":            {"1"},
		"neighborhood":    {"2"},
		"mainStreet":      {"فرحزادی"},
		"street":          {"سوم"},
		"postalCode":      {"1998765432"},
	}
}

func (e *testEnv) draft(t *testing.T) model.Draft {
	d, err := e.drafts.Get(context.Background(), testSessionID)
	require.NoError(t, err)
	return d
}

func TestWizardController_FullFlow(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	w := env.get("/information")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="name"`)

	w = env.postForm("/information", informationValues())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/information/manager", w.Header().Get("Location"))

	w = env.postForm("/information/manager", managerValues())
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/information/address", w.Header().Get("Location"))

	w = env.postForm("/information/address", addressValues(env))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/information/location", w.Header().Get("Location"))
	assert.Equal(t, wizard.StepLocation, env.draft(t).Step)

	w = env.postForm("/information/location", url.Values{"lng": {"51.42"}, "lat": {"35.75"}, "action": {"submit"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?created=1", w.Header().Get("Location"))

	require.Len(t, env.api.created, 1)
	reg := env.api.created[0]
	assert.Equal(t, "باشگاه آفتاب", reg.Name)
	assert.Equal(t, 320, reg.Area)
	assert.Equal(t, "09351112233", reg.Manager.Mobile)
	assert.Equal(t, "استان تهران، شهر تهران، محله شهرک غرب، خیابان فرحزادی، کوچه سوم", reg.Address.FullAddress)
	assert.Equal(t, model.Coordinates{51.42, 35.75}, reg.Location.Coordinates)

	assert.Equal(t, model.NewDraft(), env.draft(t), "draft is reset after creation")
}

func TestWizardController_InvalidStepRendersErrors(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	values := managerValues()
	values.Set("mobile", "0935abc")
	w := env.postForm("/information/manager", values)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "فقط عدد مجاز است")
	assert.Equal(t, 1, env.draft(t).Step)
	assert.Empty(t, env.draft(t).Manager.FirstName)
}

func TestWizardController_RejectedInputMessages(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	values := informationValues()
	values.Set("area", "12.5")
	w := env.postForm("/information", values)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "متراژ باید عدد صحیح باشد")
	assert.NotContains(t, w.Body.String(), "فقط عدد مجاز است")

	env.postForm("/information", informationValues())
	values = managerValues()
	values.Set("mobile", "093511122334")
	w = env.postForm("/information/manager", values)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "حداکثر 11 رقم مجاز است")
}

func TestWizardController_ServerErrorKeepsDraft(t *testing.T) {
	env := setupWizardControllerTest(t, false)
	env.postForm("/information", informationValues())
	env.postForm("/information/manager", managerValues())
	env.postForm("/information/address", addressValues(env))
	before := env.draft(t)

	env.api.createStatus = http.StatusInternalServerError
	w := env.postForm("/information/location", url.Values{"lng": {"51.42"}, "lat": {"35.75"}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "خطای سرور: 500 - duplicate name")
	assert.Contains(t, w.Body.String(), `value="51.42"`, "selection survives the failure")
	assert.Equal(t, before, env.draft(t))
	assert.Zero(t, env.registry.Count())

	env.api.createStatus = 0
	w = env.postForm("/information/location", url.Values{"lng": {"51.42"}, "lat": {"35.75"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestWizardController_LocationRequiresChange(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	w := env.postForm("/information/location", url.Values{
		"lng": {"51.389"},
		"lat": {"35.6892"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, env.api.requestCount())
}

func TestWizardController_LocationReset(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	w := env.postForm("/information/location", url.Values{"lng": {"52"}, "lat": {"36"}, "action": {"reset"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="51.389"`)
	assert.Equal(t, 0, env.api.requestCount())
}

func TestWizardController_AddressRegenerate(t *testing.T) {
	env := setupWizardControllerTest(t, false)

	values := addressValues(env)
	values.Set("autoFullAddress", "off")
	values.Set("fullAddress", "نشانی دستی")
	values.Set("action", "regenerate")

	w := env.postForm("/information/address", values)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "خیابان فرحزادی، کوچه سوم")
	assert.NotContains(t, w.Body.String(), "نشانی دستی")
	assert.Equal(t, model.DefaultAddress(), env.draft(t).Address, "regenerate does not save")
}

func TestWizardController_StepGating(t *testing.T) {
	env := setupWizardControllerTest(t, true)

	w := env.get("/information/address")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/information", w.Header().Get("Location"))

	env.postForm("/information", informationValues())
	w = env.get("/information/manager")
	assert.Equal(t, http.StatusOK, w.Code)

	ungated := setupWizardControllerTest(t, false)
	w = ungated.get("/information/location")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWizardController_Back(t *testing.T) {
	env := setupWizardControllerTest(t, false)
	env.postForm("/information", informationValues())
	env.postForm("/information/manager", managerValues())
	require.Equal(t, wizard.StepAddress, env.draft(t).Step)

	w := env.postForm("/information/back", url.Values{"from": {"3"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/information/manager", w.Header().Get("Location"))
	assert.Equal(t, wizard.StepManager, env.draft(t).Step)
	assert.Equal(t, "سارا", env.draft(t).Manager.FirstName, "going back keeps entered data")
}
