package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/catalog"
	"github.com/opsdash/india-ops/utils"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB      *gorm.DB
	Queries *analytics.Queries
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db, Queries: analytics.New(db)}
}

const dateLayout = "2006-01-02"

// parseRange reads start/end query params, defaulting to the full
// dataset window when absent. Dates travel as YYYY-MM-DD strings, the
// same format the rows are stored in.
func parseRange(c *gin.Context) (string, string, error) {
	startT := catalog.WindowStart
	endT := catalog.WindowEnd

	if s := c.Query("start"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return "", "", fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", s)
		}
		startT = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return "", "", fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", s)
		}
		endT = t
	}
	if endT.Before(startT) {
		return "", "", fmt.Errorf("end date must not be before start date")
	}
	return startT.Format(dateLayout), endT.Format(dateLayout), nil
}

func parseFilters(c *gin.Context) analytics.Filters {
	return analytics.Filters{
		State:    c.Query("state"),
		Zone:     c.Query("zone"),
		Category: c.Query("category"),
		Segment:  c.Query("segment"),
	}
}

func (dc *DashboardController) GetKPIs(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	snap, err := dc.Queries.KPIs(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "KPI snapshot", snap)
}

func (dc *DashboardController) GetRevenueTrend(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.RevenueTrend(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily revenue trend", rows)
}

func (dc *DashboardController) GetStatePerformance(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.StatePerformance(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Performance by state", rows)
}

func (dc *DashboardController) GetCategoryMix(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.CategoryMix(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue mix by category", rows)
}

func (dc *DashboardController) GetPaymentAnalysis(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.PaymentAnalysis(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment method analysis", rows)
}

func (dc *DashboardController) GetZoneComparison(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.ZoneComparison(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Zone comparison", rows)
}

func (dc *DashboardController) GetMonthlyYoY(c *gin.Context) {
	rows, err := dc.Queries.MonthlyYoY(parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Monthly revenue, year over year", rows)
}

func (dc *DashboardController) GetTopCustomers(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	limit := 20
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", s))
			return
		}
		limit = n
	}
	rows, err := dc.Queries.TopCustomers(start, end, parseFilters(c), limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Top customers by delivered revenue", rows)
}

func (dc *DashboardController) GetChurnRisk(c *gin.Context) {
	_, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := dc.Queries.ChurnRiskScores(end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer churn risk scores", rows)
}
