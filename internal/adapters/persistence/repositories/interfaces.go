package repositories

import (
	"context"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

// AccountFilter narrows account listings
type AccountFilter struct {
	Query        string // name/specialization search (workers)
	ApprovedOnly bool   // workers with approval status "approved"
}

// AccountRepository stores patients, workers and admins. Lookups take the
// set of kinds to probe, in order; the first match wins.
type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) error
	FindByID(ctx context.Context, kinds domain.KindSet, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, kinds domain.KindSet, email string) (*domain.Account, error)
	FindByPhone(ctx context.Context, kinds domain.KindSet, phone string) (*domain.Account, error)
	// Mutate loads the account under a row lock, applies fn and persists the
	// result when fn returns true. The returned account reflects fn's changes.
	Mutate(ctx context.Context, kind domain.Kind, id string, fn func(acc *domain.Account) bool) (*domain.Account, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
	List(ctx context.Context, kind domain.Kind, filter AccountFilter, offset, limit int) ([]*domain.Account, int64, error)
	ClearExpiredOTPs(ctx context.Context, before time.Time) (int64, error)
}

// BookingRepository stores appointments
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.Booking, error)
	ListByWorker(ctx context.Context, workerID string) ([]*domain.Booking, error)
}

// ReviewRepository stores worker reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	List(ctx context.Context) ([]*domain.Review, error)
	ListByWorker(ctx context.Context, workerID string) ([]*domain.Review, error)
}
