// Package notification sends best-effort email side channels. Sends are
// single-attempt: no queue, no retry, and a false return is never an
// error the caller should act on.
package notification

import (
	"context"
	"fmt"
	"strings"

	"vsol_site/internal/model"
	"vsol_site/pkg/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Config struct {
	SendGridAPIKey              string `yaml:"sendgridApiKey"`
	AdminEmail                  string `yaml:"adminEmail"`
	ReferralNotificationEnabled bool   `yaml:"referralNotificationEnabled"`
}

type EmailService struct {
	cfg    Config
	client *sendgrid.Client
}

// New builds the service. A missing API key disables sending entirely;
// that is a deployment choice, not an error.
func New(cfg Config) *EmailService {
	s := &EmailService{cfg: cfg}
	if cfg.SendGridAPIKey == "" {
		logger.Logger().Info("SendGrid API key not configured, email notifications will be skipped")
		return s
	}
	s.client = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	return s
}

func (s *EmailService) enabled() bool {
	return s.client != nil && s.cfg.ReferralNotificationEnabled
}

// NotifyAdmin emails the configured admin about a new referral.
func (s *EmailService) NotifyAdmin(ctx context.Context, referral *model.Referral) bool {
	log := logger.Logger()

	if !s.enabled() {
		log.Info("email notifications disabled, skipping admin notification")
		return false
	}

	phone := "Not provided"
	if referral.Phone != nil {
		phone = *referral.Phone
	}

	subject := fmt.Sprintf("New Referral from %s %s", referral.ReferrerFirstName, referral.ReferrerLastName)
	body := fmt.Sprintf(
		"New referral submission received!\n\n"+
			"Referrer: %s %s\n\n"+
			"Referral Details:\n"+
			"- LinkedIn: %s\n"+
			"- Email: %s\n"+
			"- Phone: %s\n\n"+
			"Log in to your admin panel to follow up.",
		referral.ReferrerFirstName, referral.ReferrerLastName,
		referral.LinkedinURL, referral.Email, phone,
	)

	if err := s.send(ctx, s.cfg.AdminEmail, subject, body); err != nil {
		log.Error("failed to send referral notification email",
			zap.String("admin_email", s.cfg.AdminEmail), zap.Error(err))
		return false
	}

	log.Info("referral notification email sent to admin",
		zap.String("admin_email", s.cfg.AdminEmail))
	return true
}

// NotifyReferrer sends the submitter a confirmation.
func (s *EmailService) NotifyReferrer(ctx context.Context, referral *model.Referral) bool {
	log := logger.Logger()

	if !s.enabled() {
		log.Info("email notifications disabled, skipping referral confirmation email")
		return false
	}

	subject := "Thank you for your referral to VSol Software"
	body := fmt.Sprintf(
		"Dear %s %s,\n\n"+
			"Thank you for submitting a referral to VSol Software!\n\n"+
			"We've received your submission and will reach out to %s soon.\n\n"+
			"We appreciate you helping us connect with potential clients.\n\n"+
			"Best regards,\nThe VSol Software Team\n\nwww.vsol.software",
		referral.ReferrerFirstName, referral.ReferrerLastName, referral.Email,
	)

	if err := s.send(ctx, referral.Email, subject, body); err != nil {
		log.Error("failed to send referral confirmation email",
			zap.String("to", referral.Email), zap.Error(err))
		return false
	}

	log.Info("referral confirmation email sent", zap.String("to", referral.Email))
	return true
}

func (s *EmailService) send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail("VSol Software", s.cfg.AdminEmail)
	html := strings.ReplaceAll(body, "\n", "<br>")
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
