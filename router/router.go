package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/controllers"
	"github.com/opsdash/india-ops/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.APIRateLimiter(50))

	dashboardCtrl := controllers.NewDashboardController(db)
	supportCtrl := controllers.NewSupportController(db)
	alertCtrl := controllers.NewAlertController(db, cfg)
	reportCtrl := controllers.NewReportController(db)
	datasetCtrl := controllers.NewDatasetController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/kpis", dashboardCtrl.GetKPIs)
			dashboard.GET("/revenue-trend", dashboardCtrl.GetRevenueTrend)
			dashboard.GET("/states", dashboardCtrl.GetStatePerformance)
			dashboard.GET("/categories", dashboardCtrl.GetCategoryMix)
			dashboard.GET("/payments", dashboardCtrl.GetPaymentAnalysis)
			dashboard.GET("/zones", dashboardCtrl.GetZoneComparison)
			dashboard.GET("/monthly-yoy", dashboardCtrl.GetMonthlyYoY)
			dashboard.GET("/top-customers", dashboardCtrl.GetTopCustomers)
			dashboard.GET("/churn-risk", dashboardCtrl.GetChurnRisk)
		}

		support := api.Group("/support")
		{
			support.GET("/agents", supportCtrl.GetAgentPerformance)
			support.GET("/tickets", supportCtrl.GetTicketAnalytics)
			support.GET("/weekly-csat", supportCtrl.GetWeeklyCSAT)
			support.GET("/weekly-ops", supportCtrl.GetWeeklyOps)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertCtrl.GetAlerts)
			alerts.POST("/digest", alertCtrl.SendDigest)
		}

		api.GET("/report", reportCtrl.DownloadReport)
		api.GET("/dataset", datasetCtrl.GetSummary)
	}

	return r
}
