package notifier

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"backend/internal/config"
	"backend/internal/risk"
)

const disclaimer = "Disclaimer: This system provides risk awareness and guidance only and is intended for academic demonstration, not medical diagnosis."

// Mailer delivers a tiered risk notification to a single recipient.
// Delivery is best effort and at-most-once.
type Mailer interface {
	Send(to string, prob float64) error
}

// EmailNotifier sends tiered notifications over SMTP.
type EmailNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewEmailNotifier creates an EmailNotifier from the SMTP config section.
func NewEmailNotifier(cfg *config.Config, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
		logger:   logger,
	}
}

// BuildMessage selects the notification subject and body for a risk
// probability using the three-band notification tiering.
func BuildMessage(prob float64) (subject, body string) {
	percentage := prob * 100

	switch risk.TierFor(prob) {
	case risk.TierInformational:
		subject = "Cardiac Health Status – Low Risk"
		body = fmt.Sprintf(
			"Result: Low Risk (%.1f%%)\n\n"+
				"We are pleased to inform you that no immediate cardiac concern is detected based on your provided data. "+
				"We encourage you to maintain a healthy diet and lifestyle to keep your heart strong.\n\n"+
				disclaimer, percentage)
	case risk.TierModerate:
		subject = "Cardiac Health Status – Moderate Risk"
		body = fmt.Sprintf(
			"Result: Moderate Risk (%.1f%%)\n\n"+
				"Your analysis indicates a moderate risk. We advise you to monitor your health parameters closely, "+
				"improve lifestyle habits (diet, exercise, stress management), and consider a medical consultation if any symptoms occur.\n\n"+
				disclaimer, percentage)
	default:
		subject = "Cardiac Risk Alert – High Risk Detected"
		body = fmt.Sprintf(
			"Result: High Risk (%.1f%%)\n\n"+
				"ALERT: Your analysis indicates an elevated cardiac risk. We strongly recommend an immediate medical consultation "+
				"for a professional assessment.\n\n"+
				disclaimer, percentage)
	}

	return subject, body
}

// Send delivers the tiered notification for prob to the given address.
// With placeholder credentials the message is logged instead of sent.
func (n *EmailNotifier) Send(to string, prob float64) error {
	subject, body := BuildMessage(prob)

	if n.username == "" || n.username == "your_email@gmail.com" || n.password == "your_app_password" {
		n.logger.Info("SMTP credentials not configured, logging notification instead",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n%s\r\n",
		n.from, to, subject, body,
	))

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	return smtp.SendMail(n.host+":"+n.port, auth, n.from, []string{to}, msg)
}
