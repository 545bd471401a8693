package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"libris/internal/application/lending/usecases"
	"libris/internal/domain/book"
	"libris/internal/shared/authorization"
	"libris/internal/infrastructure/persistence/models"
	"libris/internal/infrastructure/repository"
	"libris/internal/shared/constants"
	"libris/internal/shared/db"
	"libris/internal/shared/logger"
)

type lendingHandlerFixture struct {
	engine   *gin.Engine
	bookRepo book.Repository
}

// asPrincipal stands in for the JWT middleware and stores the caller's
// identity in the gin context.
func asPrincipal(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserRole, role)
		c.Next()
	}
}

func setupLendingHandler(t *testing.T) *lendingHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

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
	userRepo := repository.NewUserRepository(database, log)

	handler := NewLendingHandler(
		usecases.NewBorrowBookUseCase(bookRepo, loanRepo, txManager, 5, 14, log),
		usecases.NewReturnBookUseCase(bookRepo, loanRepo, txManager, log),
		usecases.NewListBorrowedBooksUseCase(bookRepo, loanRepo, log),
		usecases.NewListAllBorrowedBooksUseCase(bookRepo, loanRepo, userRepo, log),
		usecases.NewRepairAvailabilityUseCase(bookRepo, loanRepo, txManager, log),
	)

	engine := gin.New()
	authed := engine.Group("/api", asPrincipal(1, "user"))
	authed.POST("/books/:id/borrow", handler.BorrowBook)
	authed.POST("/books/:id/return", handler.ReturnBook)
	authed.GET("/books/borrowed", handler.ListBorrowedBooks)

	anonymous := engine.Group("/anon")
	anonymous.POST("/books/:id/borrow", handler.BorrowBook)

	adminOnly := engine.Group("/admin", asPrincipal(1, "user"), authorization.RequireAdmin())
	adminOnly.POST("/books/:id/repair", handler.RepairAvailability)

	return &lendingHandlerFixture{engine: engine, bookRepo: bookRepo}
}

func (f *lendingHandlerFixture) seedBook(t *testing.T, title string, copies int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, "Test Author", "", "", copies)
	require.NoError(t, err)
	require.NoError(t, f.bookRepo.Create(context.Background(), b))
	return b
}

func (f *lendingHandlerFixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	f.engine.ServeHTTP(recorder, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return recorder, payload
}

func TestLendingHandler_BorrowBook(t *testing.T) {
	t.Run("borrows with explicit return date", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		returnDate := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
		recorder, payload := f.do(t, http.MethodPost, borrowPath(b.ID()),
			`{"copies": 2, "return_date": "`+returnDate+`"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, true, payload["success"])

		data := payload["data"].(map[string]any)
		assert.Equal(t, float64(2), data["copies"])
		assert.Equal(t, float64(1), data["available_copies"])
		assert.Equal(t, returnDate, data["return_date"])
	})

	t.Run("empty return date falls back to the default loan period", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		recorder, payload := f.do(t, http.MethodPost, borrowPath(b.ID()), `{"copies": 1}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		data := payload["data"].(map[string]any)
		expected := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
		assert.Equal(t, expected, data["return_date"])
	})

	t.Run("malformed return date is unprocessable", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		recorder, payload := f.do(t, http.MethodPost, borrowPath(b.ID()),
			`{"copies": 1, "return_date": "07/12/2026"}`)

		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errInfo := payload["error"].(map[string]any)
		assert.Equal(t, "unprocessable", errInfo["type"])
	})

	t.Run("return date of today is unprocessable", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		today := time.Now().Format("2006-01-02")
		recorder, payload := f.do(t, http.MethodPost, borrowPath(b.ID()),
			`{"copies": 1, "return_date": "`+today+`"}`)

		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errInfo := payload["error"].(map[string]any)
		assert.Equal(t, "unprocessable", errInfo["type"])

		stored, err := f.bookRepo.GetByID(context.Background(), b.ID())
		require.NoError(t, err)
		assert.Equal(t, 3, stored.AvailableCopies())
	})

	t.Run("past return date is unprocessable", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		recorder, _ := f.do(t, http.MethodPost, borrowPath(b.ID()),
			`{"copies": 1, "return_date": "`+yesterday+`"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("non-positive copy counts are unprocessable", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		for _, body := range []string{`{}`, `{"copies": 0}`, `{"copies": -1}`} {
			recorder, payload := f.do(t, http.MethodPost, borrowPath(b.ID()), body)

			require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
			errInfo := payload["error"].(map[string]any)
			assert.Equal(t, "unprocessable", errInfo["type"])
		}
	})

	t.Run("insufficient copies returns unprocessable", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 1)

		recorder, _ := f.do(t, http.MethodPost, borrowPath(b.ID()), `{"copies": 2}`)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})

	t.Run("non-numeric book ID returns validation error", func(t *testing.T) {
		f := setupLendingHandler(t)

		recorder, _ := f.do(t, http.MethodPost, "/api/books/dune/borrow", `{"copies": 1}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("anonymous caller is unauthorized", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 3)

		recorder, _ := f.do(t, http.MethodPost, anonBorrowPath(b.ID()), `{"copies": 1}`)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestLendingHandler_ReturnBook(t *testing.T) {
	t.Run("returns a borrowed copy", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 2)

		recorder, _ := f.do(t, http.MethodPost, borrowPath(b.ID()), `{"copies": 1}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder, payload := f.do(t, http.MethodPost, returnPath(b.ID()), "")
		require.Equal(t, http.StatusOK, recorder.Code)

		data := payload["data"].(map[string]any)
		loanRow := data["loan"].(map[string]any)
		assert.NotNil(t, loanRow["date_return"])

		stored, err := f.bookRepo.GetByID(context.Background(), b.ID())
		require.NoError(t, err)
		assert.Equal(t, 2, stored.AvailableCopies())
	})

	t.Run("return without an active loan fails", func(t *testing.T) {
		f := setupLendingHandler(t)
		b := f.seedBook(t, "Dune", 2)

		recorder, _ := f.do(t, http.MethodPost, returnPath(b.ID()), "")
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	})
}

func TestLendingHandler_ListBorrowedBooks(t *testing.T) {
	f := setupLendingHandler(t)
	b := f.seedBook(t, "Dune", 3)

	recorder, _ := f.do(t, http.MethodPost, borrowPath(b.ID()), `{"copies": 2}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, payload := f.do(t, http.MethodGet, "/api/books/borrowed", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	items := payload["data"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	bookRow := first["book"].(map[string]any)
	assert.Equal(t, "Dune", bookRow["title"])
}

func TestLendingHandler_AdminGate(t *testing.T) {
	f := setupLendingHandler(t)
	b := f.seedBook(t, "Dune", 1)

	recorder, payload := f.do(t, http.MethodPost,
		"/admin/books/"+strconv.Itoa(int(b.ID()))+"/repair", "")

	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, false, payload["success"])
	errInfo := payload["error"].(map[string]any)
	assert.Equal(t, "forbidden", errInfo["type"])
	assert.Equal(t, "admin access required", errInfo["message"])
}

func borrowPath(bookID uint) string {
	return "/api/books/" + strconv.Itoa(int(bookID)) + "/borrow"
}

func returnPath(bookID uint) string {
	return "/api/books/" + strconv.Itoa(int(bookID)) + "/return"
}

func anonBorrowPath(bookID uint) string {
	return "/anon/books/" + strconv.Itoa(int(bookID)) + "/borrow"
}
