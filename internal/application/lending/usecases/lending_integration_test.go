package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/domain/user"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/infrastructure/repository"
	"libris/internal/shared/authorization"
	"libris/internal/shared/db"
	apperrors "libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type lendingFixture struct {
	db        *gorm.DB
	bookRepo  book.Repository
	loanRepo  loan.Repository
	txManager *db.TransactionManager

	borrow *BorrowBookUseCase
	ret    *ReturnBookUseCase
	repair *RepairAvailabilityUseCase
	delete *DeleteLoanUseCase
	listMy *ListBorrowedBooksUseCase
}

func setupLending(t *testing.T) *lendingFixture {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database
	// and serializes concurrent transactions the way row locks do on MySQL.
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(
		&models.BookModel{}, &models.LoanModel{}, &models.UserModel{},
	))

	log := logger.NewLogger()
	txManager := db.NewTransactionManager(database)
	bookRepo := repository.NewBookRepository(database, log)
	loanRepo := repository.NewLoanRepository(database, log)

	return &lendingFixture{
		db:        database,
		bookRepo:  bookRepo,
		loanRepo:  loanRepo,
		txManager: txManager,

		borrow: NewBorrowBookUseCase(bookRepo, loanRepo, txManager, 5, 14, log),
		ret:    NewReturnBookUseCase(bookRepo, loanRepo, txManager, log),
		repair: NewRepairAvailabilityUseCase(bookRepo, loanRepo, txManager, log),
		delete: NewDeleteLoanUseCase(bookRepo, loanRepo, txManager, log),
		listMy: NewListBorrowedBooksUseCase(bookRepo, loanRepo, log),
	}
}

func (f *lendingFixture) createBook(t *testing.T, title string, copies int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, "Test Author", "", "", copies)
	require.NoError(t, err)
	require.NoError(t, f.bookRepo.Create(context.Background(), b))
	return b
}

func memberPrincipal(id uint) authorization.Principal {
	return authorization.Principal{UserID: id, Role: authorization.RoleUser}
}

func adminPrincipal(id uint) authorization.Principal {
	return authorization.Principal{UserID: id, Role: authorization.RoleAdmin}
}

func TestBorrowBook(t *testing.T) {
	ctx := context.Background()

	t.Run("borrow decrements availability and writes one loan per copy", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)

		result, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1),
			BookID:    b.ID(),
			Copies:    2,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Book.AvailableCopies())
		assert.Len(t, result.Loans, 2)
		for _, l := range result.Loans {
			assert.True(t, l.IsActive())
			assert.NotZero(t, l.ID())
		}

		stored, err := f.bookRepo.GetByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, stored.AvailableCopies())
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		f := setupLending(t)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1),
			BookID:    999,
			Copies:    1,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("insufficient copies is rejected before the duplicate check", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 2)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1),
			BookID:    b.ID(),
			Copies:    3,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)

		// Nothing was written.
		count, err := f.loanRepo.CountActiveByBook(ctx, b.ID())
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("second borrow of the same title by the same user is rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 5)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)

		_, err = f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)

		// A different user may still borrow.
		_, err = f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(2), BookID: b.ID(), Copies: 1,
		})
		assert.NoError(t, err)
	})

	t.Run("copies above the per-request cap are rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 10)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 6,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("non-positive copy counts are rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 10)

		for _, copies := range []int{0, -1} {
			_, err := f.borrow.Execute(ctx, BorrowBookCommand{
				Principal: memberPrincipal(1), BookID: b.ID(), Copies: copies,
			})
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
		}
	})

	t.Run("past due dates are rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 10)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
			DueDate: time.Now().Add(-time.Hour),
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 1)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			BookID: b.ID(), Copies: 1,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("zero due date falls back to the default loan period", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 1)

		result, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)

		due := result.Loans[0].DueDate()
		expected := time.Now().AddDate(0, 0, 14)
		assert.WithinDuration(t, expected, due, time.Minute)
	})
}

func TestBorrowBook_LastCopyRace(t *testing.T) {
	f := setupLending(t)
	b := f.createBook(t, "Dune", 1)

	const borrowers = 4
	var wg sync.WaitGroup
	errs := make([]error, borrowers)

	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.borrow.Execute(context.Background(), BorrowBookCommand{
				Principal: memberPrincipal(uint(i + 1)),
				BookID:    b.ID(),
				Copies:    1,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one borrower should get the last copy")

	stored, err := f.bookRepo.GetByID(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, stored.AvailableCopies())

	active, err := f.loanRepo.CountActiveByBook(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestReturnBook(t *testing.T) {
	ctx := context.Background()

	t.Run("return closes the loan and releases the copy", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 2)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)

		result, err := f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)

		assert.False(t, result.Loan.IsActive())
		assert.Equal(t, 2, result.Book.AvailableCopies())
	})

	t.Run("multi-copy loans come back one copy per return", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 2,
		})
		require.NoError(t, err)

		first, err := f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, first.Book.AvailableCopies())

		second, err := f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, second.Book.AvailableCopies())
		assert.NotEqual(t, first.Loan.ID(), second.Loan.ID())

		// Nothing left to return.
		_, err = f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("return without an active loan is rejected", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 1)

		_, err := f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("drifted counter is repaired from the ledger during return", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 2)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)

		// Simulate drift: force the counter to full while one copy is out.
		err = f.db.Model(&models.BookModel{}).
			Where("id = ?", b.ID()).
			Update("available_copies", 2).Error
		require.NoError(t, err)

		result, err := f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)

		// After the return no copies are out, so the counter lands at total.
		assert.Equal(t, 2, result.Book.AvailableCopies())
		assert.False(t, result.Loan.IsActive())
	})
}

func TestRepairAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 1)

		_, err := f.repair.Execute(ctx, RepairAvailabilityCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("reports no drift on a consistent book", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 2,
		})
		require.NoError(t, err)

		result, err := f.repair.Execute(ctx, RepairAvailabilityCommand{
			Principal: adminPrincipal(9), BookID: b.ID(),
		})
		require.NoError(t, err)

		assert.False(t, result.Drifted)
		assert.Equal(t, 1, result.Current)
		assert.Equal(t, 2, result.ActiveLoans)
	})

	t.Run("rebuilds a drifted counter from the ledger", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 2,
		})
		require.NoError(t, err)

		err = f.db.Model(&models.BookModel{}).
			Where("id = ?", b.ID()).
			Update("available_copies", 3).Error
		require.NoError(t, err)

		result, err := f.repair.Execute(ctx, RepairAvailabilityCommand{
			Principal: adminPrincipal(9), BookID: b.ID(),
		})
		require.NoError(t, err)

		assert.True(t, result.Drifted)
		assert.Equal(t, 3, result.Previous)
		assert.Equal(t, 1, result.Current)

		stored, err := f.bookRepo.GetByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, 1, stored.AvailableCopies())
	})
}

func TestDeleteLoan(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		f := setupLending(t)

		err := f.delete.Execute(ctx, DeleteLoanCommand{
			Principal: memberPrincipal(1), LoanID: 1,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("deleting an active loan releases its copy", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 2)

		result, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)

		err = f.delete.Execute(ctx, DeleteLoanCommand{
			Principal: adminPrincipal(9), LoanID: result.Loans[0].ID(),
		})
		require.NoError(t, err)

		stored, err := f.bookRepo.GetByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, stored.AvailableCopies())

		gone, err := f.loanRepo.GetByID(ctx, result.Loans[0].ID())
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("deleting a returned loan leaves the counter alone", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 2)

		borrowed, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)
		_, err = f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)

		err = f.delete.Execute(ctx, DeleteLoanCommand{
			Principal: adminPrincipal(9), LoanID: borrowed.Loans[0].ID(),
		})
		require.NoError(t, err)

		stored, err := f.bookRepo.GetByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, stored.AvailableCopies())
	})

	t.Run("unknown loan is not found", func(t *testing.T) {
		f := setupLending(t)

		err := f.delete.Execute(ctx, DeleteLoanCommand{
			Principal: adminPrincipal(9), LoanID: 404,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestListBorrowedBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("lists only the caller's active loans", func(t *testing.T) {
		f := setupLending(t)
		dune := f.createBook(t, "Dune", 2)
		lotr := f.createBook(t, "The Fellowship of the Ring", 2)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: dune.ID(), Copies: 1,
		})
		require.NoError(t, err)
		_, err = f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: lotr.ID(), Copies: 1,
		})
		require.NoError(t, err)
		_, err = f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(2), BookID: dune.ID(), Copies: 1,
		})
		require.NoError(t, err)

		result, err := f.listMy.Execute(ctx, ListBorrowedBooksQuery{
			Principal: memberPrincipal(1),
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		for _, item := range result.Items {
			assert.Equal(t, uint(1), item.Loan.UserID())
			require.NotNil(t, item.Book)
		}
	})

	t.Run("returned loans drop off the list", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 1)

		_, err := f.borrow.Execute(ctx, BorrowBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(), Copies: 1,
		})
		require.NoError(t, err)
		_, err = f.ret.Execute(ctx, ReturnBookCommand{
			Principal: memberPrincipal(1), BookID: b.ID(),
		})
		require.NoError(t, err)

		result, err := f.listMy.Execute(ctx, ListBorrowedBooksQuery{
			Principal: memberPrincipal(1),
		})
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []string
	fail    bool
}

func (n *recordingNotifier) SendOverdueNotice(to, userName, bookTitle string, dueDate time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return assert.AnError
	}
	n.notices = append(n.notices, to)
	return nil
}

func TestNotifyOverdueLoans(t *testing.T) {
	ctx := context.Background()

	seedOverdueLoan := func(t *testing.T, f *lendingFixture, userID, bookID uint, overdue bool) {
		t.Helper()
		borrowed := time.Now().Add(-72 * time.Hour)
		due := time.Now().Add(24 * time.Hour)
		if overdue {
			due = time.Now().Add(-24 * time.Hour)
		}
		err := f.db.Create(&models.LoanModel{
			UserID:     userID,
			BookID:     bookID,
			BorrowedAt: borrowed,
			DueDate:    due,
		}).Error
		require.NoError(t, err)
	}

	createUser := func(t *testing.T, f *lendingFixture, name, email string) *user.User {
		t.Helper()
		u, err := user.NewUser(name, email, "hash", authorization.RoleUser)
		require.NoError(t, err)
		userRepo := repository.NewUserRepository(f.db, logger.NewLogger())
		require.NoError(t, userRepo.Create(ctx, u))
		return u
	}

	t.Run("notifies each overdue borrower", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)
		alice := createUser(t, f, "Alice", "alice@example.com")
		bob := createUser(t, f, "Bob", "bob@example.com")

		seedOverdueLoan(t, f, alice.ID(), b.ID(), true)
		seedOverdueLoan(t, f, bob.ID(), b.ID(), false)

		notifier := &recordingNotifier{}
		userRepo := repository.NewUserRepository(f.db, logger.NewLogger())
		uc := NewNotifyOverdueLoansUseCase(f.bookRepo, f.loanRepo, userRepo, notifier, logger.NewLogger())

		result, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Scanned)
		assert.Equal(t, 1, result.Notified)
		assert.Zero(t, result.Failed)
		assert.Equal(t, []string{"alice@example.com"}, notifier.notices)
	})

	t.Run("counts delivery failures without aborting the scan", func(t *testing.T) {
		f := setupLending(t)
		b := f.createBook(t, "Dune", 3)
		alice := createUser(t, f, "Alice", "alice@example.com")

		seedOverdueLoan(t, f, alice.ID(), b.ID(), true)

		notifier := &recordingNotifier{fail: true}
		userRepo := repository.NewUserRepository(f.db, logger.NewLogger())
		uc := NewNotifyOverdueLoansUseCase(f.bookRepo, f.loanRepo, userRepo, notifier, logger.NewLogger())

		result, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Scanned)
		assert.Zero(t, result.Notified)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("empty ledger scans nothing", func(t *testing.T) {
		f := setupLending(t)

		notifier := &recordingNotifier{}
		userRepo := repository.NewUserRepository(f.db, logger.NewLogger())
		uc := NewNotifyOverdueLoansUseCase(f.bookRepo, f.loanRepo, userRepo, notifier, logger.NewLogger())

		result, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Zero(t, result.Scanned)
	})
}
