package book

import (
	"bookStore/internal/apperror"
	"context"
	"fmt"
	"strconv"
)

const invalidTypeMessage = "The type parameter has an invalid value."

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Search lists every book when both search and filterType are empty,
// otherwise it matches search case-insensitively against the chosen field.
func (s *Service) Search(ctx context.Context, search, filterType string) ([]Book, error) {
	var (
		books []Book
		err   error
	)
	switch {
	case search == "" && filterType == "":
		books, err = s.storage.All(ctx)
	case search == "" || filterType == "":
		return nil, apperror.InvalidParam(apperror.MissingParamsMessage)
	default:
		filter, ok := ParseFilter(filterType)
		if !ok {
			return nil, apperror.InvalidParam(invalidTypeMessage)
		}
		books, err = s.storage.Search(ctx, filter, search)
	}
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	if books == nil {
		books = make([]Book, 0)
	}
	return books, nil
}

func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidParam(apperror.BookNotFoundMessage)
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, rawID string) (*Details, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	details, err := s.storage.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	if details == nil {
		return nil, apperror.InvalidParam(apperror.BookNotFoundMessage)
	}
	return details, nil
}
