package email

import (
	"time"

	"libris/internal/shared/logger"
)

// NoopEmailService satisfies the mail interfaces without sending anything.
// Used when email delivery is disabled in configuration.
type NoopEmailService struct {
	logger logger.Interface
}

func NewNoopEmailService() *NoopEmailService {
	return &NoopEmailService{
		logger: logger.NewLogger().With("component", "email.noop"),
	}
}

func (s *NoopEmailService) SendOverdueNotice(to, userName, bookTitle string, dueDate time.Time) error {
	s.logger.Debugw("email delivery disabled, skipping overdue notice", "to", to, "book", bookTitle)
	return nil
}

func (s *NoopEmailService) SendWelcomeEmail(to, userName string) error {
	s.logger.Debugw("email delivery disabled, skipping welcome email", "to", to)
	return nil
}
