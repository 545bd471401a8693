package usecases

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"libris/internal/domain/book"
	"libris/internal/shared/authorization"
	"libris/internal/shared/errors"
	"libris/internal/shared/logger"
)

type CreateBookCommand struct {
	Principal   authorization.Principal
	Title       string
	Author      string
	Publisher   string
	ISBN        string
	Description string
	Tags        []string
	TotalCopies int
}

type CreateBookResult struct {
	Book *book.Book
}

// CreateBookUseCase adds a new title to the catalog with all copies available.
type CreateBookUseCase struct {
	bookRepo  book.Repository
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewCreateBookUseCase(bookRepo book.Repository, logger logger.Interface) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookRepo:  bookRepo,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, cmd CreateBookCommand) (*CreateBookResult, error) {
	if !cmd.Principal.IsAdmin() {
		return nil, errors.NewForbiddenError("admin access required")
	}

	newBook, err := book.NewBook(cmd.Title, cmd.Author, cmd.Publisher, cmd.ISBN, cmd.TotalCopies)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	description := uc.sanitizer.Sanitize(cmd.Description)
	if err := newBook.UpdateDetails(cmd.Title, cmd.Author, cmd.Publisher, cmd.ISBN, description, cmd.Tags); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.bookRepo.Create(ctx, newBook); err != nil {
		uc.logger.Errorw("failed to create book", "title", cmd.Title, "error", err)
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	uc.logger.Infow("book created", "book_id", newBook.ID(), "title", newBook.Title(), "copies", newBook.TotalCopies())

	return &CreateBookResult{Book: newBook}, nil
}
