package services

import (
	"fmt"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/mateng0/shopkeeper-station/structs"
	"github.com/mateng0/shopkeeper-station/structs/tables"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient *resend.Client
	clientOnce  = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.APIKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email sending disabled, skipping", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendWelcomeEmail sends the onboarding email after registration.
func (es *EmailService) SendWelcomeEmail(user *tables.User) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #2563eb; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Welcome to Shopkeeper Station</h1>
				</div>
				<div class="content">
					<p>Hi %s,</p>
					<p>Your vendor account is ready. Sign in to start listing your products.</p>
					<p>If you did not create this account, please ignore this email.</p>
				</div>
				<div class="footer">
					<p>Shopkeeper Station | Your storefront, your rules</p>
				</div>
			</div>
		</body>
		</html>
	`, user.Email)

	return es.SendEmail([]string{user.Email}, "Welcome to Shopkeeper Station", emailBody)
}
