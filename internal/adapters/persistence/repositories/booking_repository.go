package repositories

import (
	"context"
	"errors"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/models"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"gorm.io/gorm"
)

// bookingRepository implements BookingRepository interface
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	m := models.BookingFromDomain(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.StorageError("create booking", err)
	}
	booking.CreatedAt = m.CreatedAt
	booking.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a booking by ID
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StorageError("get booking", err)
	}
	return booking.ToDomain(), nil
}

// UpdateStatus sets the status of a booking and returns the updated record
func (r *bookingRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, domain.StorageError("update booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// ListByPatient lists bookings made by a patient
func (r *bookingRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.Booking, error) {
	return r.list(ctx, "patient_id = ?", patientID)
}

// ListByWorker lists bookings with a worker
func (r *bookingRepository) ListByWorker(ctx context.Context, workerID string) ([]*domain.Booking, error) {
	return r.list(ctx, "worker_id = ?", workerID)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Booking, error) {
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("appointment_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.StorageError("list bookings", err)
	}

	bookings := make([]*domain.Booking, len(rows))
	for i := range rows {
		bookings[i] = rows[i].ToDomain()
	}
	return bookings, nil
}
