package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/opsdash/india-ops/utils"
)

// SMTPConfig carries the delivery settings for the alert digest.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	UseTLS   bool // STARTTLS when true, implicit TLS otherwise
}

// Mailer sends the weekly alert digest over SMTP.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// digestData feeds the email template.
type digestData struct {
	PeriodLabel string
	Recipient   string
	Alerts      []Alert
	GeneratedAt string
}

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;background:#f4f4f0;font-family:Georgia,serif">
<table width="100%" cellpadding="0" cellspacing="0" style="background:#f4f4f0;padding:40px 0">
  <tr><td align="center">
  <table width="620" cellpadding="0" cellspacing="0" style="background:white;border:1px solid #ddd">
    <tr>
      <td style="background:#1a1a1a;padding:32px 36px">
        <div style="color:#999;font-size:10px;letter-spacing:3px;text-transform:uppercase;font-family:monospace;margin-bottom:8px">Weekly Intelligence Report</div>
        <div style="color:white;font-size:24px;font-weight:700">Customer Operations<br>Analytics</div>
        <div style="color:#888;font-size:12px;margin-top:8px;font-family:monospace">{{.PeriodLabel}}</div>
      </td>
    </tr>
    <tr>
      <td style="padding:28px 36px 16px">
        <p style="font-size:15px;color:#222;line-height:1.6;margin:0">
          Dear {{.Recipient}},<br><br>
          Here is your automated weekly operations intelligence summary for the India market.
          This report highlights significant trend deviations that require your attention.
        </p>
      </td>
    </tr>
    {{if .Alerts}}{{range .Alerts}}
    <tr>
      <td style="padding:8px 36px">
        <div style="border-left:4px solid {{if eq .Severity "critical"}}#dc2626{{else if eq .Severity "warning"}}#d97706{{else if eq .Severity "positive"}}#16a34a{{else}}#6b7280{{end}};background:#f8f9fa;padding:14px 16px">
          <strong style="font-size:14px;color:#111">{{.Metric}}</strong>
          <div style="font-size:13px;color:#444;line-height:1.5;margin-top:6px">{{.Message}}</div>
        </div>
      </td>
    </tr>
    {{end}}{{else}}
    <tr><td style="padding:20px 36px;color:#666;font-style:italic;font-size:14px">
      No significant trend deviations detected this week. All metrics within normal range.
    </td></tr>
    {{end}}
    <tr>
      <td style="background:#1a1a1a;padding:20px 36px;color:#888;font-size:11px;font-family:monospace">
        Customer Operations Analytics · India Market · Auto-generated {{.GeneratedAt}}
      </td>
    </tr>
  </table>
  </td></tr>
</table>
</body>
</html>`))

// RenderDigest renders the alert digest body for one weekly send.
func RenderDigest(alerts []Alert, periodLabel, recipient string) ([]byte, error) {
	if recipient == "" {
		recipient = "Team"
	}
	var buf bytes.Buffer
	err := digestTmpl.Execute(&buf, digestData{
		PeriodLabel: periodLabel,
		Recipient:   recipient,
		Alerts:      alerts,
		GeneratedAt: time.Now().Format("02 Jan 2006"),
	})
	if err != nil {
		return nil, fmt.Errorf("mailer: render digest: %w", err)
	}
	return buf.Bytes(), nil
}

// Send delivers an HTML email to recipient.
func (m *Mailer) Send(recipient, subject string, htmlBody []byte) error {
	if m.cfg.Host == "" || m.cfg.User == "" {
		return fmt.Errorf("mailer: SMTP host and user must be configured")
	}
	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.User)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(htmlBody)

	if m.cfg.UseTLS {
		if err := smtp.SendMail(addr, auth, m.cfg.User, []string{recipient}, msg.Bytes()); err != nil {
			return fmt.Errorf("mailer: send: %w", err)
		}
	} else {
		if err := m.sendImplicitTLS(addr, auth, recipient, msg.Bytes()); err != nil {
			return fmt.Errorf("mailer: send: %w", err)
		}
	}

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("mailer: alert digest sent to %s", recipient)
	}
	return nil
}

// sendImplicitTLS handles servers that expect TLS from the first byte
// (typically port 465), which smtp.SendMail cannot do.
func (m *Mailer) sendImplicitTLS(addr string, auth smtp.Auth, recipient string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.cfg.User); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
