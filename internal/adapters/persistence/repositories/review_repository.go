package repositories

import (
	"context"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/models"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"gorm.io/gorm"
)

// reviewRepository implements ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m := &models.Review{
		ID:         review.ID,
		WorkerID:   review.WorkerID,
		PatientID:  review.PatientID,
		ReviewText: review.Text,
		Rating:     review.Rating,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.StorageError("create review", err)
	}
	review.CreatedAt = m.CreatedAt
	return nil
}

// List lists all reviews
func (r *reviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.find(r.db.WithContext(ctx))
}

// ListByWorker lists reviews for a worker
func (r *reviewRepository) ListByWorker(ctx context.Context, workerID string) ([]*domain.Review, error) {
	return r.find(r.db.WithContext(ctx).Where("worker_id = ?", workerID))
}

func (r *reviewRepository) find(q *gorm.DB) ([]*domain.Review, error) {
	var rows []models.Review
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domain.StorageError("list reviews", err)
	}

	reviews := make([]*domain.Review, len(rows))
	for i := range rows {
		reviews[i] = rows[i].ToDomain()
	}
	return reviews, nil
}
