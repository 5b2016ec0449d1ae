package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/models"
	"github.com/opsdash/india-ops/utils"
	"gorm.io/gorm"
)

type DatasetController struct {
	DB *gorm.DB
}

func NewDatasetController(db *gorm.DB) *DatasetController {
	return &DatasetController{DB: db}
}

// GetSummary reports row counts per table, a quick health check for
// the seeded dataset.
func (dt *DatasetController) GetSummary(c *gin.Context) {
	var customers, orders, agents, tickets, returns int64

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Customer{}, &customers},
		{&models.Order{}, &orders},
		{&models.Agent{}, &agents},
		{&models.Ticket{}, &tickets},
		{&models.Return{}, &returns},
	}
	for _, cnt := range counts {
		if err := dt.DB.Model(cnt.model).Count(cnt.dest).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dataset summary", gin.H{
		"customers": customers,
		"orders":    orders,
		"agents":    agents,
		"tickets":   tickets,
		"returns":   returns,
	})
}
