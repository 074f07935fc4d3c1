// File: /services/email_service.go
package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
	"planit-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendJoinReceipt emails the user after their payment is confirmed and
// they are recorded as an event participant.
func (es *EmailService) SendJoinReceipt(email, name, eventTitle, paymentRef string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("PlanIt - You're in for %s!", eventTitle))

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Payment Confirmed</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #007bff; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .ref { background: #e9ecef; padding: 15px; text-align: center; border-radius: 8px; margin: 20px 0; font-family: monospace; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>PlanIt</h1>
            <p>Payment Confirmed</p>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your payment went through and you are now a participant of <strong>%s</strong>.</p>

            <div class="ref">Payment reference: %s</div>

            <p>You can find the event details and shared expenses on your My Events page.</p>

            <p>See you there!</p>
            <p><strong>The PlanIt Team</strong></p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, name, eventTitle, paymentRef)

	textBody := fmt.Sprintf(`
Hello %s!

Your payment went through and you are now a participant of %s.

Payment reference: %s

You can find the event details and shared expenses on your My Events page.

See you there!
The PlanIt Team

This is an automated email, please do not reply.
    `, name, eventTitle, paymentRef)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("📧 Join receipt sent to %s for event %q\n", email, eventTitle)
	return nil
}
