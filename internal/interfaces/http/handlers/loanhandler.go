package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"libris/internal/application/lending/usecases"
	"libris/internal/shared/logger"
	"libris/internal/shared/utils"
)

// LoanHandler exposes the administrative view of the loan ledger.
type LoanHandler struct {
	listLoansUC  *usecases.ListLoansUseCase
	deleteLoanUC *usecases.DeleteLoanUseCase
	logger       logger.Interface
}

func NewLoanHandler(
	listLoansUC *usecases.ListLoansUseCase,
	deleteLoanUC *usecases.DeleteLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		listLoansUC:  listLoansUC,
		deleteLoanUC: deleteLoanUC,
		logger:       logger.NewLogger(),
	}
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	var userID, bookID uint
	if raw := c.Query("user_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID = uint(parsed)
		}
	}
	if raw := c.Query("book_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
			bookID = uint(parsed)
		}
	}
	activeOnly := c.Query("active") == "true"

	query := usecases.ListLoansQuery{
		Principal:  principalFromContext(c),
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		UserID:     userID,
		BookID:     bookID,
		ActiveOnly: activeOnly,
	}

	result, err := h.listLoansUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]LedgerEntryResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toLedgerEntryResponse(item))
	}

	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	loanID, err := utils.ParseIDParam(c, "id", "loan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteLoanCommand{
		Principal: principalFromContext(c),
		LoanID:    loanID,
	}

	if err := h.deleteLoanUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "loan deleted", nil)
}
