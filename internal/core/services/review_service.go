package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"github.com/google/uuid"
)

// Rating bounds
const (
	MinRating = 0
	MaxRating = 5
)

// ReviewService handles worker reviews
type ReviewService struct {
	accounts repositories.AccountRepository
	reviews  repositories.ReviewRepository
}

// NewReviewService creates a new review service
func NewReviewService(accounts repositories.AccountRepository, reviews repositories.ReviewRepository) *ReviewService {
	return &ReviewService{accounts: accounts, reviews: reviews}
}

// CreateReviewInput represents review input
type CreateReviewInput struct {
	WorkerID   string
	PatientID  string
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// List returns all reviews, or a single worker's when workerID is set
func (s *ReviewService) List(ctx context.Context, workerID string) ([]*domain.Review, error) {
	if workerID != "" {
		return s.reviews.ListByWorker(ctx, workerID)
	}
	return s.reviews.List(ctx)
}

// Create stores a review for an existing worker
func (s *ReviewService) Create(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	text := strings.TrimSpace(input.ReviewText)
	if text == "" {
		return nil, fmt.Errorf("%w: review text is required", domain.ErrInvalidInput)
	}
	if input.Rating < MinRating || input.Rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, MinRating, MaxRating)
	}

	if _, err := s.accounts.FindByID(ctx, domain.KindSet{domain.KindWorker}, input.WorkerID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New().String(),
		WorkerID:  input.WorkerID,
		PatientID: input.PatientID,
		Text:      text,
		Rating:    input.Rating,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
