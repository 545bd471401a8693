package email

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendOverdueNotice(to, userName, bookTitle string, dueDate time.Time) error {
	due := dueDate.Format("January 2, 2006")

	subject := fmt.Sprintf("Overdue Book: %s", bookTitle)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Overdue Book Reminder</h2>
			<p>Hello %s,</p>
			<p>The book <strong>%s</strong> you borrowed was due on %s and has not been returned.</p>
			<p>Please return it as soon as possible so other readers can borrow it.</p>
		</body>
		</html>
	`, userName, bookTitle, due)

	plainBody := fmt.Sprintf(`
Overdue Book Reminder

Hello %s,

The book "%s" you borrowed was due on %s and has not been returned.

Please return it as soon as possible so other readers can borrow it.
	`, userName, bookTitle, due)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendWelcomeEmail(to, userName string) error {
	subject := "Welcome to the Library"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s!</h2>
			<p>Your library account has been created. You can now browse the catalog and borrow books.</p>
		</body>
		</html>
	`, userName)

	plainBody := fmt.Sprintf(`
Welcome, %s!

Your library account has been created. You can now browse the catalog and borrow books.
	`, userName)

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
