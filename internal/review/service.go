package review

import (
	"bookStore/internal/apperror"
	"bookStore/internal/book"
	"bookStore/internal/session"
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	minRating = 1
	maxRating = 5

	ratingMessage = "Rating must be a whole number from 1 to 5."
)

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Add stores the caller's review and returns it with the book's refreshed rating aggregate.
func (s *Service) Add(ctx context.Context, author *session.Identity, request AddRequest) (*AddResponse, error) {
	text := strings.TrimSpace(request.Review)
	if request.Rating == "" || text == "" || request.BookID == "" {
		return nil, apperror.InvalidParam(apperror.MissingParamsMessage)
	}
	rating, err := strconv.Atoi(request.Rating.String())
	if err != nil || rating < minRating || rating > maxRating {
		return nil, apperror.InvalidParam(ratingMessage)
	}
	bookID, err := book.ParseID(request.BookID.String())
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.BookExists(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("check book %d: %w", bookID, err)
	}
	if !exists {
		return nil, apperror.InvalidParam(apperror.BookNotFoundMessage)
	}

	created := Review{
		UserID:    author.UserID,
		FirstName: author.FirstName,
		LastName:  author.LastName,
		BookID:    bookID,
		Rating:    rating,
		Text:      text,
	}
	if err = s.storage.Insert(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	summary, err := s.storage.Summary(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("summarize reviews of book %d: %w", bookID, err)
	}
	return &AddResponse{Review: created, AvgRating: summary.Average, RatingCount: summary.Count}, nil
}

func (s *Service) List(ctx context.Context, rawBookID string) (*ListResponse, error) {
	bookID, err := book.ParseID(rawBookID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.storage.List(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of book %d: %w", bookID, err)
	}
	summary, err := s.storage.Summary(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("summarize reviews of book %d: %w", bookID, err)
	}
	if reviews == nil {
		reviews = make([]Review, 0)
	}
	return &ListResponse{Reviews: reviews, AvgRating: summary.Average}, nil
}
