package mailing

import (
	"Dish-Discovery/internal/utils"
	"bytes"
	"gopkg.in/gomail.v2"
	"html/template"
	"strconv"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		Enabled() bool
		SendMail(toEmail string, subject string, body string) error
		SendClaimDecision(toEmail string, restaurant string, status string) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

var claimDecisionTemplate = template.Must(template.New("claim_decision").Parse(
	`<p>Hello,</p>
<p>Your ownership claim for <strong>{{.Restaurant}}</strong> is now <strong>{{.Status}}</strong>.</p>
{{if eq .Status "Verified"}}<p>You can now manage its dishes at <a href="{{.AppURL}}">{{.AppURL}}</a>.</p>{{end}}
<p>{{.Sender}}</p>`))

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func NewMailer(config MailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) Enabled() bool {
	return m.config.SMTPHost != "" && m.config.SMTPEmail != ""
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (m *smtpMailer) SendClaimDecision(toEmail string, restaurant string, status string) error {
	body, err := ClaimDecisionBody(m.config, restaurant, status)
	if err != nil {
		return err
	}
	return m.SendMail(toEmail, "Your restaurant claim has been reviewed", body)
}

func ClaimDecisionBody(config MailConfig, restaurant string, status string) (string, error) {
	var buf bytes.Buffer
	err := claimDecisionTemplate.Execute(&buf, map[string]string{
		"Restaurant": restaurant,
		"Status":     status,
		"AppURL":     config.AppURL,
		"Sender":     config.SMTPSender,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
