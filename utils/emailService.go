package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendIssuanceEmail notifies a recipient that a certificate was issued to
// them, with the tracking code they can share.
func SendIssuanceEmail(toEmail, toName, certificateTitle, trackingCode string) error {
	key := config.AppConfig.SendGridKey
	if key == "" || key == "defaultSecret" {
		log.Printf("Issuance email to %s skipped: no SendGrid key configured", toEmail)
		return nil
	}

	from := mail.NewEmail("LMS Certificates", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Your certificate: %s", certificateTitle)

	plainText := fmt.Sprintf(
		"Hi %s,\n\nYou have been issued the certificate \"%s\".\nTracking code: %s\n",
		toName, certificateTitle, trackingCode,
	)
	htmlBody := fmt.Sprintf(`
	<div style="font-family: Helvetica, Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2>Congratulations, %s!</h2>
		<p>You have been issued the certificate <strong>%s</strong>.</p>
		<p>Tracking code: <code>%s</code></p>
	</div>`, toName, certificateTitle, trackingCode)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
