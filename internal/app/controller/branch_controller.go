package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/internal/app/model"
	"github.com/milicode/gym-panel/internal/app/service"
	apperrors "github.com/milicode/gym-panel/internal/errors"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/storage"
	"github.com/milicode/gym-panel/internal/views"
	"github.com/milicode/gym-panel/pkg/gymapi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BranchController struct {
	branchService service.BranchService
	views         *views.Renderer
	media         storage.MediaPolicy
}

func NewBranchController(branchService service.BranchService, v *views.Renderer, media storage.MediaPolicy) *BranchController {
	return &BranchController{
		branchService: branchService,
		views:         v,
		media:         media,
	}
}

// List renders the branch list. Every request fetches again; ?refresh is
// the manual refresh link.
// GET /
func (ctrl *BranchController) List(c *gin.Context) {
	page := views.HomePage{Page: newPage(c, "باشگاه‌ها", 0)}
	if c.Query("created") != "" {
		page.Notice = "باشگاه با موفقیت ثبت شد"
	}

	branches, err := ctrl.branchService.ListBranches(c.Request.Context())
	if err != nil {
		info := apperrors.ParseError(err, apperrors.ContextFetch)
		page.Error = info.Message
		render(c, ctrl.views, info.Status, views.PageHome, page)
		return
	}

	page.Branches = branches
	render(c, ctrl.views, http.StatusOK, views.PageHome, page)
}

// Detail renders one branch. A blank id fails without calling the API.
// GET /branch/:id
func (ctrl *BranchController) Detail(c *gin.Context) {
	id := c.Param("id")
	page := views.BranchDetailPage{Page: newPage(c, "جزئیات باشگاه", 0), ID: id}
	if c.Query("completed") != "" {
		page.Notice = "اطلاعات باشگاه به‌روزرسانی شد"
	}

	branch, err := ctrl.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		info := apperrors.ParseError(err, apperrors.ContextFetch)
		page.Error = info.Message
		render(c, ctrl.views, info.Status, views.PageBranchDetail, page)
		return
	}

	page.Title = branch.Name
	page.Branch = branch
	render(c, ctrl.views, http.StatusOK, views.PageBranchDetail, page)
}

// ShowComplete renders the facilities and media form, prefilled from the
// branch when it can be fetched.
// GET /branch/:id/complete
func (ctrl *BranchController) ShowComplete(c *gin.Context) {
	id := c.Param("id")
	page := views.BranchCompletePage{Page: newPage(c, "تکمیل اطلاعات", 0), ID: id}

	branch, err := ctrl.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		info := apperrors.ParseError(err, apperrors.ContextFetch)
		page.Error = info.Message
		render(c, ctrl.views, info.Status, views.PageBranchComplete, page)
		return
	}
	if branch.Facilities != nil {
		page.Facilities = *branch.Facilities
	}
	render(c, ctrl.views, http.StatusOK, views.PageBranchComplete, page)
}

// SubmitComplete updates the facility flags, then uploads the attached
// images. A failed upload is reported next to the saved facilities.
// POST /branch/:id/complete
func (ctrl *BranchController) SubmitComplete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	page := views.BranchCompletePage{Page: newPage(c, "تکمیل اطلاعات", 0), ID: id}

	fail := func(err error, context string) {
		info := apperrors.ParseError(err, context)
		page.Error = info.Message
		render(c, ctrl.views, info.Status, views.PageBranchComplete, page)
	}

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("Failed to parse complete-information form", map[string]interface{}{
			"branch_id": id,
			"error":     err.Error(),
		})
		fail(err, apperrors.ContextMedia)
		return
	}
	defer func() { _ = form.RemoveAll() }()

	var facilities model.Facilities
	for _, item := range facilities.Items() {
		facilities.Set(item.Key, isChecked(form.Value[item.Key]))
	}
	page.Facilities = facilities

	files, closeFiles, err := ctrl.media.Open(form.File[gymapi.MediaField])
	if err != nil {
		log.Warn("Rejected media upload", map[string]interface{}{
			"branch_id": id,
			"error":     err.Error(),
		})
		fail(err, apperrors.ContextMedia)
		return
	}
	defer closeFiles()

	result, err := ctrl.branchService.CompleteInformation(c.Request.Context(), id, facilities, files)
	if err != nil {
		fail(err, apperrors.ContextFacilities)
		return
	}

	if result.MediaErr != nil {
		page.Notice = "امکانات باشگاه ذخیره شد"
		page.MediaError = "خطا در بارگذاری تصاویر: " + apperrors.ParseError(result.MediaErr, apperrors.ContextMedia).Message
		render(c, ctrl.views, http.StatusBadGateway, views.PageBranchComplete, page)
		return
	}

	seeOther(c, "/branch/"+id+"?completed=1")
}

func isChecked(values []string) bool {
	if len(values) == 0 {
		return false
	}
	switch values[0] {
	case "on", "true", "1":
		return true
	}
	return false
}

// Export streams the branch list as a spreadsheet.
// GET /branches/export.xlsx
func (ctrl *BranchController) Export(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	branches, err := ctrl.branchService.ListBranches(c.Request.Context())
	if err != nil {
		apperrors.ParseAndRespond(c, err, apperrors.ContextFetch)
		return
	}

	filename := fmt.Sprintf("branches-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if err := service.WriteBranchesXLSX(c.Writer, branches); err != nil {
		log.Error("Failed to write branch export", err)
		return
	}

	log.Info("Branch list exported", map[string]interface{}{
		"count": len(branches),
	})
}
