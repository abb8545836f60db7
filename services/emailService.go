package services

import (
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService(apiKey string, from string) {
	if apiKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}

	log.Info().Msg("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

const emailLayout = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #34d399;
        }
        .header h1 {
            color: #059669;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .badge {
            background-color: #ecfdf5;
            border: 2px solid #34d399;
            border-radius: 8px;
            padding: 20px;
            text-align: center;
            font-size: 32px;
            font-weight: bold;
            color: #059669;
            margin: 20px 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>

    <div class="content">
        %s
    </div>

    <div class="footer">
        <p>Salah Tracker</p>
    </div>
</body>
</html>
`

func (s *EmailService) send(toEmail string, subject string, heading string, content string, text string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("email service not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Html:    fmt.Sprintf(emailLayout, heading, content),
		Text:    text,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %v", err)
	}
	return sent.Id, nil
}

func displayName(name string, email string) string {
	if name != "" {
		return name
	}
	return email
}

// SendWelcomeEmail greets a newly registered account.
func (s *EmailService) SendWelcomeEmail(toEmail string, name string) error {
	who := html.EscapeString(displayName(name, toEmail))
	content := fmt.Sprintf(`
        <h2>Assalamu alaikum, %s!</h2>
        <p>Your account is ready. Mark each prayer as you pray it, keep your streak going and unlock a good deed card for every 100 reward points.</p>
        <p>May Allah accept it from you.</p>`, who)
	text := fmt.Sprintf("Assalamu alaikum, %s! Your Salah Tracker account is ready.", displayName(name, toEmail))

	id, err := s.send(toEmail, "Welcome to Salah Tracker", "Welcome to Salah Tracker", content, text)
	if err != nil {
		log.Error().Err(err).Str("to", toEmail).Msg("Failed to send welcome email")
		return err
	}

	log.Info().Str("to", toEmail).Str("email_id", id).Msg("Sent welcome email")
	return nil
}

// SendLevelUpEmail congratulates a user on reaching level.
func (s *EmailService) SendLevelUpEmail(toEmail string, name string, level int) error {
	who := html.EscapeString(displayName(name, toEmail))
	content := fmt.Sprintf(`
        <h2>MashaAllah, %s!</h2>
        <p>Your consistency has paid off. You have reached</p>
        <div class="badge">Level %d</div>
        <p>Keep going, every prayer counts.</p>`, who, level)
	text := fmt.Sprintf("MashaAllah, %s! You reached level %d.", displayName(name, toEmail), level)

	id, err := s.send(toEmail, fmt.Sprintf("You reached level %d!", level), "Level up", content, text)
	if err != nil {
		log.Error().Err(err).Str("to", toEmail).Int("level", level).Msg("Failed to send level up email")
		return err
	}

	log.Info().Str("to", toEmail).Int("level", level).Str("email_id", id).Msg("Sent level up email")
	return nil
}
