package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/views"
)

// newPage fills the layout fields shared by every page.
func newPage(c *gin.Context, title string, step int) views.Page {
	return views.Page{
		Title:     title,
		CSRFField: csrf.TemplateField(c.Request),
		Step:      step,
	}
}

func render(c *gin.Context, v *views.Renderer, status int, page string, data any) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := v.Render(c.Writer, page, data); err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to render page", err, map[string]interface{}{
			"page": page,
		})
		c.String(http.StatusInternalServerError, "خطای داخلی سرور")
	}
}

// seeOther redirects after a successful POST.
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// NotFound renders the catch-all page.
func NotFound(v *views.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, v, http.StatusNotFound, views.PageNotFound, newPage(c, "صفحه پیدا نشد", 0))
	}
}
