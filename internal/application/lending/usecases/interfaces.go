package usecases

import "time"

// OverdueNotifier delivers overdue reminders to borrowers. Implementations
// must not be invoked inside a database transaction.
type OverdueNotifier interface {
	SendOverdueNotice(to, userName, bookTitle string, dueDate time.Time) error
}
