package utils

import (
	"fmt"
	"hotelaudit/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendAuditSubmittedEmail notifies a reviewer that an audit is waiting for
// review. Best-effort: a missing SendGrid key just logs and returns.
func SendAuditSubmittedEmail(toEmail, toName, propertyName string, auditID uint) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping notification for audit %d", auditID)
		return nil
	}

	from := mail.NewEmail("Hotel Audit Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Audit #%d submitted for %s", auditID, propertyName)

	plain := fmt.Sprintf(
		"Hi %s,\n\nAudit #%d for %s has been submitted and is ready for your review.\n",
		toName, auditID, propertyName)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Audit <strong>#%d</strong> for <strong>%s</strong> has been submitted and is ready for your review.</p>`,
		toName, auditID, propertyName)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] failed to send submission notice for audit %d: %v", auditID, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid returned %d for audit %d", response.StatusCode, auditID)
		return fmt.Errorf("sendgrid returned %d", response.StatusCode)
	}

	log.Printf("[EMAIL] submission notice sent for audit %d", auditID)
	return nil
}
