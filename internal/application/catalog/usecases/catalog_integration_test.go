package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"libris/internal/domain/book"
	"libris/internal/domain/loan"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/infrastructure/repository"
	"libris/internal/shared/authorization"
	"libris/internal/shared/db"
	apperrors "libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type catalogFixture struct {
	db       *gorm.DB
	bookRepo book.Repository
	loanRepo loan.Repository

	create        *CreateBookUseCase
	update        *UpdateBookUseCase
	deletePreserv *DeleteBookUseCase
	deleteHard    *DeleteBookUseCase
	get           *GetBookUseCase
	list          *ListBooksUseCase
	listAvailable *ListAvailableBooksUseCase
}

func setupCatalog(t *testing.T) *catalogFixture {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(&models.BookModel{}, &models.LoanModel{}))

	log := logger.NewLogger()
	txManager := db.NewTransactionManager(database)
	bookRepo := repository.NewBookRepository(database, log)
	loanRepo := repository.NewLoanRepository(database, log)

	return &catalogFixture{
		db:       database,
		bookRepo: bookRepo,
		loanRepo: loanRepo,

		create:        NewCreateBookUseCase(bookRepo, log),
		update:        NewUpdateBookUseCase(bookRepo, txManager, log),
		deletePreserv: NewDeleteBookUseCase(bookRepo, loanRepo, txManager, true, log),
		deleteHard:    NewDeleteBookUseCase(bookRepo, loanRepo, txManager, false, log),
		get:           NewGetBookUseCase(bookRepo, log),
		list:          NewListBooksUseCase(bookRepo, loanRepo, log),
		listAvailable: NewListAvailableBooksUseCase(bookRepo, log),
	}
}

func admin() authorization.Principal {
	return authorization.Principal{UserID: 9, Role: authorization.RoleAdmin}
}

func member() authorization.Principal {
	return authorization.Principal{UserID: 1, Role: authorization.RoleUser}
}

func (f *catalogFixture) seedActiveLoan(t *testing.T, userID, bookID uint) {
	t.Helper()
	err := f.db.Create(&models.LoanModel{
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: time.Now(),
		DueDate:    time.Now().Add(14 * 24 * time.Hour),
	}).Error
	require.NoError(t, err)
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a book with all copies available", func(t *testing.T) {
		f := setupCatalog(t)

		result, err := f.create.Execute(ctx, CreateBookCommand{
			Principal:   admin(),
			Title:       "Dune",
			Author:      "Frank Herbert",
			Publisher:   "Chilton Books",
			ISBN:        "978-0441013593",
			Description: "Desert planet epic",
			Tags:        []string{"scifi", "classic"},
			TotalCopies: 3,
		})
		require.NoError(t, err)

		assert.NotZero(t, result.Book.ID())
		assert.Equal(t, 3, result.Book.AvailableCopies())

		stored, err := f.bookRepo.GetByID(ctx, result.Book.ID())
		require.NoError(t, err)
		assert.Equal(t, "Dune", stored.Title())
		assert.Equal(t, []string{"scifi", "classic"}, stored.Tags())
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupCatalog(t)

		_, err := f.create.Execute(ctx, CreateBookCommand{
			Principal:   member(),
			Title:       "Dune",
			Author:      "Frank Herbert",
			TotalCopies: 1,
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("strips markup from the description", func(t *testing.T) {
		f := setupCatalog(t)

		result, err := f.create.Execute(ctx, CreateBookCommand{
			Principal:   admin(),
			Title:       "Dune",
			Author:      "Frank Herbert",
			Description: `epic<script>alert("x")</script> story`,
			TotalCopies: 1,
		})
		require.NoError(t, err)
		assert.NotContains(t, result.Book.Description(), "<script>")
		assert.Contains(t, result.Book.Description(), "epic")
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		f := setupCatalog(t)

		_, err := f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "", Author: "A", TotalCopies: 1,
		})
		assert.Error(t, err)

		_, err = f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "T", Author: "A", TotalCopies: 0,
		})
		assert.Error(t, err)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	createDune := func(t *testing.T, f *catalogFixture, copies int) *book.Book {
		t.Helper()
		result, err := f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "Dune", Author: "Frank Herbert", TotalCopies: copies,
		})
		require.NoError(t, err)
		return result.Book
	}

	t.Run("edits descriptive fields", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f, 2)

		result, err := f.update.Execute(ctx, UpdateBookCommand{
			Principal: admin(),
			BookID:    b.ID(),
			Title:     "Dune Messiah",
			Author:    "Frank Herbert",
			Tags:      []string{"scifi"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", result.Book.Title())
		// Zero total keeps the stock untouched.
		assert.Equal(t, 2, result.Book.TotalCopies())
	})

	t.Run("growing stock grows availability by the delta", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f, 2)
		f.seedActiveLoan(t, 1, b.ID())
		err := f.db.Model(&models.BookModel{}).Where("id = ?", b.ID()).
			Update("available_copies", 1).Error
		require.NoError(t, err)

		result, err := f.update.Execute(ctx, UpdateBookCommand{
			Principal:   admin(),
			BookID:      b.ID(),
			Title:       "Dune",
			Author:      "Frank Herbert",
			TotalCopies: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, result.Book.TotalCopies())
		assert.Equal(t, 4, result.Book.AvailableCopies())
	})

	t.Run("requires admin", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f, 1)

		_, err := f.update.Execute(ctx, UpdateBookCommand{
			Principal: member(), BookID: b.ID(), Title: "X", Author: "Y",
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		f := setupCatalog(t)

		_, err := f.update.Execute(ctx, UpdateBookCommand{
			Principal: admin(), BookID: 404, Title: "X", Author: "Y",
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	createDune := func(t *testing.T, f *catalogFixture) *book.Book {
		t.Helper()
		result, err := f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "Dune", Author: "Frank Herbert", TotalCopies: 2,
		})
		require.NoError(t, err)
		return result.Book
	}

	t.Run("blocked while copies are out", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f)
		f.seedActiveLoan(t, 1, b.ID())

		err := f.deletePreserv.Execute(ctx, DeleteBookCommand{
			Principal: admin(), BookID: b.ID(),
		})
		require.Error(t, err)
		appErr := apperrors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperrors.ErrorTypeUnprocessable, appErr.Type)
	})

	t.Run("soft delete keeps loan history", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f)

		// A returned loan in the history must survive the delete.
		returned := time.Now()
		err := f.db.Create(&models.LoanModel{
			UserID:     1,
			BookID:     b.ID(),
			BorrowedAt: time.Now().Add(-48 * time.Hour),
			DueDate:    time.Now().Add(-24 * time.Hour),
			ReturnedAt: &returned,
		}).Error
		require.NoError(t, err)

		require.NoError(t, f.deletePreserv.Execute(ctx, DeleteBookCommand{
			Principal: admin(), BookID: b.ID(),
		}))

		gone, err := f.bookRepo.GetByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Nil(t, gone)

		var loanCount int64
		require.NoError(t, f.db.Model(&models.LoanModel{}).Where("book_id = ?", b.ID()).Count(&loanCount).Error)
		assert.Equal(t, int64(1), loanCount)

		// The row is soft deleted, not gone.
		var raw int64
		require.NoError(t, f.db.Unscoped().Model(&models.BookModel{}).Where("id = ?", b.ID()).Count(&raw).Error)
		assert.Equal(t, int64(1), raw)
	})

	t.Run("hard delete cascades loan history", func(t *testing.T) {
		f := setupCatalog(t)
		b := createDune(t, f)

		returned := time.Now()
		err := f.db.Create(&models.LoanModel{
			UserID:     1,
			BookID:     b.ID(),
			BorrowedAt: time.Now().Add(-48 * time.Hour),
			DueDate:    time.Now().Add(-24 * time.Hour),
			ReturnedAt: &returned,
		}).Error
		require.NoError(t, err)

		require.NoError(t, f.deleteHard.Execute(ctx, DeleteBookCommand{
			Principal: admin(), BookID: b.ID(),
		}))

		var raw int64
		require.NoError(t, f.db.Unscoped().Model(&models.BookModel{}).Where("id = ?", b.ID()).Count(&raw).Error)
		assert.Zero(t, raw)

		var loanCount int64
		require.NoError(t, f.db.Model(&models.LoanModel{}).Where("book_id = ?", b.ID()).Count(&loanCount).Error)
		assert.Zero(t, loanCount)
	})
}

func TestListBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("pairs each title with its current borrowers", func(t *testing.T) {
		f := setupCatalog(t)

		dune, err := f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "Dune", Author: "Frank Herbert", TotalCopies: 3,
		})
		require.NoError(t, err)
		_, err = f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "The Hobbit", Author: "J.R.R. Tolkien", TotalCopies: 1,
		})
		require.NoError(t, err)

		f.seedActiveLoan(t, 1, dune.Book.ID())
		f.seedActiveLoan(t, 2, dune.Book.ID())
		// Two copies to the same borrower list the user once.
		f.seedActiveLoan(t, 2, dune.Book.ID())

		result, err := f.list.Execute(ctx)
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		byTitle := map[string]CatalogItem{}
		for _, item := range result.Items {
			byTitle[item.Book.Title()] = item
		}

		assert.ElementsMatch(t, []uint{1, 2}, byTitle["Dune"].BorrowerIDs)
		assert.Empty(t, byTitle["The Hobbit"].BorrowerIDs)
	})

	t.Run("available listing excludes fully borrowed titles", func(t *testing.T) {
		f := setupCatalog(t)

		dune, err := f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "Dune", Author: "Frank Herbert", TotalCopies: 1,
		})
		require.NoError(t, err)
		_, err = f.create.Execute(ctx, CreateBookCommand{
			Principal: admin(), Title: "The Hobbit", Author: "J.R.R. Tolkien", TotalCopies: 1,
		})
		require.NoError(t, err)

		err = f.db.Model(&models.BookModel{}).Where("id = ?", dune.Book.ID()).
			Update("available_copies", 0).Error
		require.NoError(t, err)

		result, err := f.listAvailable.Execute(ctx)
		require.NoError(t, err)
		require.Len(t, result.Books, 1)
		assert.Equal(t, "The Hobbit", result.Books[0].Title())
	})
}

func TestGetBook(t *testing.T) {
	ctx := context.Background()
	f := setupCatalog(t)

	created, err := f.create.Execute(ctx, CreateBookCommand{
		Principal: admin(), Title: "Dune", Author: "Frank Herbert", TotalCopies: 1,
	})
	require.NoError(t, err)

	result, err := f.get.Execute(ctx, GetBookQuery{BookID: created.Book.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Dune", result.Book.Title())

	_, err = f.get.Execute(ctx, GetBookQuery{BookID: 404})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
}
