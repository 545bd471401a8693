package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libris/internal/application/dashboard/usecases"
	"libris/internal/shared/utils"
)

type DashboardHandler struct {
	getStatsUC *usecases.GetStatsUseCase
}

func NewDashboardHandler(getStatsUC *usecases.GetStatsUseCase) *DashboardHandler {
	return &DashboardHandler{getStatsUC: getStatsUC}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	query := usecases.GetStatsQuery{Principal: principalFromContext(c)}

	result, err := h.getStatsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"total_books":     result.TotalBooks,
		"total_users":     result.TotalUsers,
		"available_books": result.AvailableBooks,
		"borrowed_books":  result.BorrowedBooks,
	})
}
