package handlers

import (
	"time"

	catalogusecases "libris/internal/application/catalog/usecases"
	"libris/internal/domain/book"
)

// BookResponse is the catalog entry as exposed by the API.
type BookResponse struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Publisher       string   `json:"publisher,omitempty"`
	ISBN            string   `json:"isbn,omitempty"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	TotalCopies     int      `json:"total_copies"`
	AvailableCopies int      `json:"available_copies"`
	Status          string   `json:"status"`
	BorrowerIDs     []uint   `json:"borrower_ids,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// AvailableBookResponse is the trimmed shape of the available-books listing.
type AvailableBookResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn,omitempty"`
	AvailableCopies int    `json:"available_copies"`
	Status          string `json:"status"`
}

func toBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:              b.ID(),
		Title:           b.Title(),
		Author:          b.Author(),
		Publisher:       b.Publisher(),
		ISBN:            b.ISBN(),
		Description:     b.Description(),
		Tags:            b.Tags(),
		TotalCopies:     b.TotalCopies(),
		AvailableCopies: b.AvailableCopies(),
		Status:          b.Status(),
		CreatedAt:       b.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt().Format(time.RFC3339),
	}
}

func toCatalogItemResponse(item catalogusecases.CatalogItem) BookResponse {
	resp := toBookResponse(item.Book)
	resp.BorrowerIDs = item.BorrowerIDs
	return resp
}

func toAvailableBookResponse(b *book.Book) AvailableBookResponse {
	return AvailableBookResponse{
		ID:              b.ID(),
		Title:           b.Title(),
		Author:          b.Author(),
		ISBN:            b.ISBN(),
		AvailableCopies: b.AvailableCopies(),
		Status:          b.Status(),
	}
}
