package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/hearth-labs/hearth/internal/shared/config"
)

// SMTPEmailService delivers retention emails over SMTP.
type SMTPEmailService struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendRetentionEmail is the standard check-in sent to at-risk customers.
func (s *SMTPEmailService) SendRetentionEmail(to, name string) error {
	subject := "We're here for your home"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>Your home care plan has perks you may not be using yet: priority booking, member discounts, and an annual free service visit.</p>
			<p><a href="%s/perks">See your plan perks</a></p>
			<p>Want help planning your next maintenance visit? Just reply to this email and our care team will sort it out.</p>
			<p>— The Hearth Care Team</p>
		</body>
		</html>
	`, name, s.config.PortalURL)

	plainBody := fmt.Sprintf(`Hi %s,

Your home care plan has perks you may not be using yet: priority booking, member discounts, and an annual free service visit.

See your plan perks: %s/perks

Want help planning your next maintenance visit? Just reply to this email and our care team will sort it out.

— The Hearth Care Team
`, name, s.config.PortalURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

// SendWinBackEmail opens the win-back sequence for high-risk customers.
func (s *SMTPEmailService) SendWinBackEmail(to, name string) error {
	subject := "Your home misses you"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Hi %s,</h2>
			<p>It's been a while since your last maintenance visit. Homes quietly build up small issues that are cheap to fix now and expensive to fix later.</p>
			<p><a href="%s/book">Book a visit</a></p>
			<p>If something about your plan isn't working for you, tell us. We'd rather fix the plan than lose you.</p>
			<p>— The Hearth Care Team</p>
		</body>
		</html>
	`, name, s.config.PortalURL)

	plainBody := fmt.Sprintf(`Hi %s,

It's been a while since your last maintenance visit. Homes quietly build up small issues that are cheap to fix now and expensive to fix later.

Book a visit: %s/book

If something about your plan isn't working for you, tell us. We'd rather fix the plan than lose you.

— The Hearth Care Team
`, name, s.config.PortalURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
