package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBranchController_List(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/?created=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "باشگاه هفت")
	assert.Contains(t, w.Body.String(), `href="/branch/7"`)
	assert.Contains(t, w.Body.String(), "باشگاه با موفقیت ثبت شد")

	w = env.get("/?refresh=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, env.api.requestCount(), "every load fetches again")
}

func TestBranchController_Detail(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/branch/7")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<strong>بهترین</strong>")
	assert.Contains(t, body, "✅ کافه")
	assert.Contains(t, body, `href="/branch/7/complete"`)
}

func TestBranchController_DetailErrors(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/branch/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "شناسه باشگاه نامعتبر است")
	assert.Equal(t, 0, env.api.requestCount(), "blank id never reaches the API")

	w = env.get("/branch/99")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "خطای سرور: 404")
	assert.Contains(t, body, `href="/branch/99"`, "retry link")
	assert.NotContains(t, body, `href="/branch/99/complete"`)
}

func TestBranchController_NotFound(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "صفحه پیدا نشد")
}

func completeRequest(t *testing.T, fields map[string]string, images map[string]string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, contentType := range images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/branch/7/complete", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestBranchController_ShowComplete(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/branch/7/complete")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="hasCafe" checked`)
	assert.Contains(t, w.Body.String(), `enctype="multipart/form-data"`)
}

func TestBranchController_SubmitComplete(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.do(completeRequest(t,
		map[string]string{"hasWC": "on", "hasSwimmingPool": "on"},
		map[string]string{"hall.jpg": "image/jpeg"},
	))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/branch/7?completed=1", w.Header().Get("Location"))

	require.Len(t, env.api.facilities, 1)
	assert.Equal(t, true, env.api.facilities[0]["hasWC"])
	assert.Equal(t, true, env.api.facilities[0]["hasSwimmingPool"])
	assert.Equal(t, false, env.api.facilities[0]["hasCafe"])
	assert.Equal(t, []string{"hall.jpg"}, env.api.mediaFiles)
}

func TestBranchController_SubmitCompleteMediaFailure(t *testing.T) {
	env := setupBranchControllerTest(t)
	env.api.mediaStatus = http.StatusInternalServerError

	w := env.do(completeRequest(t,
		map[string]string{"hasCafe": "on"},
		map[string]string{"a.png": "image/png"},
	))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "امکانات باشگاه ذخیره شد")
	assert.Contains(t, body, "خطا در بارگذاری تصاویر")
	assert.Len(t, env.api.facilities, 1, "facilities are not rolled back")
}

func TestBranchController_SubmitCompleteRejectsNonImage(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.do(completeRequest(t, nil, map[string]string{"doc.pdf": "application/pdf"}))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Equal(t, 0, env.api.requestCount())
}

func TestBranchController_SubmitCompleteFacilitiesFailure(t *testing.T) {
	env := setupBranchControllerTest(t)
	env.api.facilitiesStatus = http.StatusBadRequest

	w := env.do(completeRequest(t, map[string]string{"hasCafe": "on"}, map[string]string{"a.png": "image/png"}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "خطای سرور: 400")
	assert.Empty(t, env.api.mediaFiles, "no upload after a failed facilities update")
}

func TestBranchController_Export(t *testing.T) {
	env := setupBranchControllerTest(t)

	w := env.get("/branches/export.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "باشگاه هفت", rows[1][1])
}
