package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/auth"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// AppointmentLayout is the accepted "date time" format for bookings
const AppointmentLayout = "2006-01-02 15:04"

// BookingService handles appointment booking and checkout
type BookingService struct {
	accounts   repositories.AccountRepository
	bookings   repositories.BookingRepository
	payments   PaymentProvider
	successURL string
	currency   string
	now        func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(
	accounts repositories.AccountRepository,
	bookings repositories.BookingRepository,
	payments PaymentProvider,
	successURL string,
	currency string,
) *BookingService {
	if currency == "" {
		currency = "usd"
	}
	return &BookingService{
		accounts:   accounts,
		bookings:   bookings,
		payments:   payments,
		successURL: successURL,
		currency:   currency,
		now:        time.Now,
	}
}

// CheckoutInput represents a checkout request for one appointment
type CheckoutInput struct {
	PatientID string
	WorkerID  string
	Date      string `json:"date"`
	Time      string `json:"time"`
	CancelURL string
}

// CheckoutResult is the created payment session and its pending booking
type CheckoutResult struct {
	Session *domain.PaymentSession `json:"session"`
	Booking *domain.Booking        `json:"booking"`
}

// CreateCheckoutSession opens a payment session for the worker's ticket price
// and records a pending booking against it
func (s *BookingService) CreateCheckoutSession(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	// 1. Worker and patient must exist
	worker, err := s.accounts.FindByID(ctx, domain.KindSet{domain.KindWorker}, input.WorkerID)
	if err != nil {
		return nil, err
	}
	patient, err := s.accounts.FindByID(ctx, domain.KindSet{domain.KindPatient}, input.PatientID)
	if err != nil {
		return nil, err
	}

	// 2. Appointment must be in the future
	at, err := time.ParseInLocation(AppointmentLayout,
		strings.TrimSpace(input.Date)+" "+strings.TrimSpace(input.Time), time.Local)
	if err != nil || !at.After(s.now()) {
		return nil, fmt.Errorf("%w: cannot select date and time in the past", domain.ErrInvalidInput)
	}

	var price float64
	var bio string
	if worker.Worker != nil {
		price = worker.Worker.TicketPrice
		bio = worker.Worker.Bio
	}

	// 3. Payment session
	session, err := s.payments.CreateCheckoutSession(ctx, CheckoutRequest{
		CustomerEmail: patient.Email,
		ReferenceID:   worker.ID,
		ProductName:   worker.Name,
		Description:   bio,
		ImageURL:      worker.Photo,
		AmountCents:   int64(math.Round(price * 100)),
		Currency:      s.currency,
		SuccessURL:    s.successURL + "/checkout-success",
		CancelURL:     input.CancelURL,
	})
	if err != nil {
		log.Errorf("❌ checkout session for worker %s failed: %v", worker.ID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	// 4. Pending booking
	booking := &domain.Booking{
		ID:              uuid.New().String(),
		WorkerID:        worker.ID,
		PatientID:       patient.ID,
		TicketPrice:     price,
		PaymentSession:  session.ID,
		AppointmentDate: time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()),
		AppointmentTime: at.Format("15:04"),
		Status:          domain.BookingPending,
		IsPaid:          true,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	log.Infof("📅 booking %s created for worker %s", booking.ID, worker.ID)
	return &CheckoutResult{Session: session, Booking: booking}, nil
}

// Complete marks a booking as completed
func (s *BookingService) Complete(ctx context.Context, caller auth.Identity, id string) (*domain.Booking, error) {
	return s.setStatus(ctx, caller, id, domain.BookingCompleted)
}

// Cancel marks a booking as cancelled
func (s *BookingService) Cancel(ctx context.Context, caller auth.Identity, id string) (*domain.Booking, error) {
	return s.setStatus(ctx, caller, id, domain.BookingCancelled)
}

// setStatus changes a booking's status; only its patient, its worker or an admin may
func (s *BookingService) setStatus(ctx context.Context, caller auth.Identity, id, status string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin &&
		caller.AccountID != booking.PatientID &&
		caller.AccountID != booking.WorkerID {
		log.Warnf("⚠️ account %s denied status change on booking %s", caller.AccountID, id)
		return nil, domain.ErrForbidden
	}

	return s.bookings.UpdateStatus(ctx, id, status)
}

// ListForPatient returns a patient's appointments
func (s *BookingService) ListForPatient(ctx context.Context, patientID string) ([]*domain.Booking, error) {
	return s.bookings.ListByPatient(ctx, patientID)
}

// ListForWorker returns a worker's appointments
func (s *BookingService) ListForWorker(ctx context.Context, workerID string) ([]*domain.Booking, error) {
	return s.bookings.ListByWorker(ctx, workerID)
}
