package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"libris/internal/application/catalog/usecases"
	"libris/internal/shared/logger"
	"libris/internal/shared/utils"
)

type BookHandler struct {
	createBookUC         *usecases.CreateBookUseCase
	updateBookUC         *usecases.UpdateBookUseCase
	deleteBookUC         *usecases.DeleteBookUseCase
	getBookUC            *usecases.GetBookUseCase
	listBooksUC          *usecases.ListBooksUseCase
	listAvailableBooksUC *usecases.ListAvailableBooksUseCase
	logger               logger.Interface
}

func NewBookHandler(
	createBookUC *usecases.CreateBookUseCase,
	updateBookUC *usecases.UpdateBookUseCase,
	deleteBookUC *usecases.DeleteBookUseCase,
	getBookUC *usecases.GetBookUseCase,
	listBooksUC *usecases.ListBooksUseCase,
	listAvailableBooksUC *usecases.ListAvailableBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUC:         createBookUC,
		updateBookUC:         updateBookUC,
		deleteBookUC:         deleteBookUC,
		getBookUC:            getBookUC,
		listBooksUC:          listBooksUC,
		listAvailableBooksUC: listAvailableBooksUC,
		logger:               logger.NewLogger(),
	}
}

type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Author      string   `json:"author" binding:"required,max=255"`
	Publisher   string   `json:"publisher" binding:"max=255"`
	ISBN        string   `json:"isbn" binding:"max=32"`
	Description string   `json:"description" binding:"max=2000"`
	Tags        []string `json:"tags"`
	TotalCopies int      `json:"total_copies" binding:"required,min=1"`
}

type UpdateBookRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Author      string   `json:"author" binding:"required,max=255"`
	Publisher   string   `json:"publisher" binding:"max=255"`
	ISBN        string   `json:"isbn" binding:"max=32"`
	Description string   `json:"description" binding:"max=2000"`
	Tags        []string `json:"tags"`
	TotalCopies int      `json:"total_copies" binding:"omitempty,min=1"`
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooksUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]BookResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, toCatalogItemResponse(item))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *BookHandler) ListAvailableBooks(c *gin.Context) {
	result, err := h.listAvailableBooksUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]AvailableBookResponse, 0, len(result.Books))
	for _, b := range result.Books {
		items = append(items, toAvailableBookResponse(b))
	}

	utils.SuccessResponse(c, http.StatusOK, "", items)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getBookUC.Execute(c.Request.Context(), usecases.GetBookQuery{BookID: bookID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toBookResponse(result.Book))
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create book", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.CreateBookCommand{
		Principal:   principalFromContext(c),
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		ISBN:        req.ISBN,
		Description: req.Description,
		Tags:        req.Tags,
		TotalCopies: req.TotalCopies,
	}

	result, err := h.createBookUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toBookResponse(result.Book), "book added to catalog")
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update book", "error", err)
		utils.BindingErrorResponse(c, err)
		return
	}

	cmd := usecases.UpdateBookCommand{
		Principal:   principalFromContext(c),
		BookID:      bookID,
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		ISBN:        req.ISBN,
		Description: req.Description,
		Tags:        req.Tags,
		TotalCopies: req.TotalCopies,
	}

	result, err := h.updateBookUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "book updated", toBookResponse(result.Book))
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := utils.ParseIDParam(c, "id", "book")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteBookCommand{
		Principal: principalFromContext(c),
		BookID:    bookID,
	}

	if err := h.deleteBookUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "book removed from catalog", nil)
}
