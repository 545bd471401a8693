package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libris/internal/application/lending/usecases"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
	"libris/internal/shared/utils"
)

type LendingHandler struct {
	borrowBookUC           *usecases.BorrowBookUseCase
	returnBookUC           *usecases.ReturnBookUseCase
	listBorrowedBooksUC    *usecases.ListBorrowedBooksUseCase
	listAllBorrowedBooksUC *usecases.ListAllBorrowedBooksUseCase
	repairAvailabilityUC   *usecases.RepairAvailabilityUseCase
	logger                 logger.Interface
}

func NewLendingHandler(
	borrowBookUC *usecases.BorrowBookUseCase,
	returnBookUC *usecases.ReturnBookUseCase,
	listBorrowedBooksUC *usecases.ListBorrowedBooksUseCase,
	listAllBorrowedBooksUC *usecases.ListAllBorrowedBooksUseCase,
	repairAvailabilityUC *usecases.RepairAvailabilityUseCase,
) *LendingHandler {
	return &LendingHandler{
		borrowBookUC:           borrowBookUC,
		returnBookUC:           returnBookUC,
		listBorrowedBooksUC:    listBorrowedBooksUC,
		listAllBorrowedBooksUC: listAllBorrowedBooksUC,
		repairAvailabilityUC:   repairAvailabilityUC,
		logger:                 logger.NewLogger(),
	}
}

// Copies carries no binding tag: a non-positive count is a business-input
// failure (422, decided in the use case), not a malformed request.
type BorrowBookRequest struct {
	Copies     int    `json:"copies"`
	ReturnDate string `json:"return_date"` // YYYY-MM-DD; empty uses the default loan period
}

func (h *LendingHandler) BorrowBook(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for borrow", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	var dueDate time.Time
	if req.ReturnDate != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.ReturnDate, time.Local)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewUnprocessableError("return_date must be a date in YYYY-MM-DD format"))
			return
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		if !parsed.After(today) {
			utils.ErrorResponseWithError(c, errors.NewUnprocessableError("return_date must be after today"))
			return
		}
		// The loan runs through the end of the stated day.
		dueDate = parsed.Add(24*time.Hour - time.Second)
	}

	cmd := usecases.BorrowBookCommand{
		Principal: principalFromContext(c),
		BookID:    bookID,
		Copies:    req.Copies,
		DueDate:   dueDate,
	}

	result, err := h.borrowBookUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	receipt := BorrowReceiptResponse{
		BookID:     result.Book.ID(),
		Title:      result.Book.Title(),
		Copies:     len(result.Loans),
		BorrowedAt: result.Loans[0].BorrowedAt().Format(time.RFC3339),
		ReturnDate: result.Loans[0].DueDate().Format(dateLayout),
		Available:  result.Book.AvailableCopies(),
	}

	utils.SuccessResponse(c, http.StatusOK, "book borrowed successfully", receipt)
}

func (h *LendingHandler) ReturnBook(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ReturnBookCommand{
		Principal: principalFromContext(c),
		BookID:    bookID,
	}

	result, err := h.returnBookUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	response := toLoanResponse(usecases.BorrowedBookItem{Loan: result.Loan, Book: result.Book})

	utils.SuccessResponse(c, http.StatusOK, "book returned successfully", response)
}

func (h *LendingHandler) ListBorrowedBooks(c *gin.Context) {
	query := usecases.ListBorrowedBooksQuery{Principal: principalFromContext(c)}

	result, err := h.listBorrowedBooksUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]BorrowedBookResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toLoanResponse(item))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *LendingHandler) ListAllBorrowedBooks(c *gin.Context) {
	query := usecases.ListAllBorrowedBooksQuery{Principal: principalFromContext(c)}

	result, err := h.listAllBorrowedBooksUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]LedgerEntryResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toLedgerEntryResponse(item))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *LendingHandler) RepairAvailability(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RepairAvailabilityCommand{
		Principal: principalFromContext(c),
		BookID:    bookID,
	}

	result, err := h.repairAvailabilityUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	report := RepairReportResponse{
		BookID:      result.Book.ID(),
		Previous:    result.Previous,
		Current:     result.Current,
		ActiveLoans: result.ActiveLoans,
		Drifted:     result.Drifted,
	}

	utils.SuccessResponse(c, http.StatusOK, "availability reconciled", report)
}
