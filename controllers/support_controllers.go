package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/utils"
	"gorm.io/gorm"
)

type SupportController struct {
	DB      *gorm.DB
	Queries *analytics.Queries
}

func NewSupportController(db *gorm.DB) *SupportController {
	return &SupportController{DB: db, Queries: analytics.New(db)}
}

func parseWeeks(c *gin.Context) (int, error) {
	weeks := 8
	if s := c.Query("weeks"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("invalid weeks %q", s)
		}
		weeks = n
	}
	return weeks, nil
}

func (sc *SupportController) GetAgentPerformance(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := sc.Queries.AgentPerformance(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Agent performance", rows)
}

func (sc *SupportController) GetTicketAnalytics(c *gin.Context) {
	start, end, err := parseRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := sc.Queries.TicketAnalytics(start, end, parseFilters(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ticket volume by category and priority", rows)
}

func (sc *SupportController) GetWeeklyCSAT(c *gin.Context) {
	weeks, err := parseWeeks(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := sc.Queries.WeeklyCSATTrend(weeks)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Weekly CSAT trend", rows)
}

func (sc *SupportController) GetWeeklyOps(c *gin.Context) {
	weeks, err := parseWeeks(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rows, err := sc.Queries.WeeklyOpsTrend(weeks)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Weekly operations trend", rows)
}
