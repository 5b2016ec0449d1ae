package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/services"
	"github.com/opsdash/india-ops/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{
		Reports: services.NewReportService(analytics.New(db)),
	}
}

// DownloadReport renders the full HTML operations report for the
// requested period and returns it as a file download.
func (rc *ReportController) DownloadReport(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	html, err := rc.Reports.Render(start, end)
	if err != nil {
		utils.ErrorLogger.Printf("report render failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("ops_report_%s.html", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
