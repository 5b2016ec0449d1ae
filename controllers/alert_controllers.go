package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opsdash/india-ops/analytics"
	"github.com/opsdash/india-ops/config"
	"github.com/opsdash/india-ops/services"
	"github.com/opsdash/india-ops/utils"
	"gorm.io/gorm"
)

type AlertController struct {
	Alerts    *services.AlertService
	Mailer    *services.Mailer
	Recipient string
}

func NewAlertController(db *gorm.DB, cfg config.Config) *AlertController {
	return &AlertController{
		Alerts: services.NewAlertService(analytics.New(db)),
		Mailer: services.NewMailer(services.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			UseTLS:   cfg.SMTP.UseTLS,
		}),
		Recipient: cfg.SMTP.Recipient,
	}
}

// GetAlerts runs trend detection over the recent weekly series.
func (ac *AlertController) GetAlerts(c *gin.Context) {
	alerts, err := ac.Alerts.DetectTrends()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Trend alerts", alerts)
}

// SendDigest detects trends and emails the digest to the configured
// recipient.
func (ac *AlertController) SendDigest(c *gin.Context) {
	if ac.Recipient == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("no alert recipient configured, set ALERT_RECIPIENT"))
		return
	}

	alerts, err := ac.Alerts.DetectTrends()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	period := fmt.Sprintf("Week of %s", time.Now().Format("02 Jan 2006"))
	body, err := services.RenderDigest(alerts, period, ac.Recipient)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	subject := fmt.Sprintf("Ops Intelligence Digest: %d alert(s)", len(alerts))
	if err := ac.Mailer.Send(ac.Recipient, subject, body); err != nil {
		utils.ErrorLogger.Printf("alert digest delivery failed: %v", err)
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Alert digest sent", gin.H{
		"recipient": ac.Recipient,
		"alerts":    len(alerts),
	})
}
