package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JUST9N1/Security-Backend/internal/core/auth"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

func newTestBookings(payments *stubPayments) (*BookingService, *memBookings) {
	w := worker("w-1", "Dr. Alice", "cardiology", domain.ApprovalApproved)
	w.Worker.TicketPrice = 49.99
	accounts := newMemAccounts(w, patient(0))
	bookings := newMemBookings()
	svc := NewBookingService(accounts, bookings, payments, "https://client.example", "")
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local) }
	return svc, bookings
}

func TestCreateCheckoutSession(t *testing.T) {
	payments := &stubPayments{}
	svc, bookings := newTestBookings(payments)

	res, err := svc.CreateCheckoutSession(context.Background(), &CheckoutInput{
		PatientID: "p-1",
		WorkerID:  "w-1",
		Date:      "2025-03-02",
		Time:      "09:30",
		CancelURL: "https://api.example/workers/w-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", res.Session.ID)
	assert.Equal(t, "cs_test_1", res.Booking.PaymentSession)
	assert.Equal(t, domain.BookingPending, res.Booking.Status)
	assert.Equal(t, "09:30", res.Booking.AppointmentTime)
	assert.Equal(t, 49.99, res.Booking.TicketPrice)

	assert.Equal(t, int64(4999), payments.req.AmountCents)
	assert.Equal(t, "usd", payments.req.Currency)
	assert.Equal(t, "pat@example.com", payments.req.CustomerEmail)
	assert.Equal(t, "https://client.example/checkout-success", payments.req.SuccessURL)

	mine, err := svc.ListForPatient(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Len(t, bookings.rows, 1)
}

func TestCreateCheckoutSession_RejectsPastOrMalformed(t *testing.T) {
	svc, bookings := newTestBookings(&stubPayments{})

	for _, in := range []CheckoutInput{
		{Date: "2025-02-28", Time: "10:00"},
		{Date: "2025-03-01", Time: "11:59"},
		{Date: "tomorrow", Time: "10:00"},
	} {
		in.PatientID, in.WorkerID = "p-1", "w-1"
		_, err := svc.CreateCheckoutSession(context.Background(), &in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s %s", in.Date, in.Time)
	}
	assert.Empty(t, bookings.rows)
}

func TestCreateCheckoutSession_Failures(t *testing.T) {
	t.Run("unknown worker", func(t *testing.T) {
		svc, _ := newTestBookings(&stubPayments{})
		_, err := svc.CreateCheckoutSession(context.Background(), &CheckoutInput{
			PatientID: "p-1", WorkerID: "w-404", Date: "2025-03-02", Time: "10:00",
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("payment provider error", func(t *testing.T) {
		svc, bookings := newTestBookings(&stubPayments{err: errBoom})
		_, err := svc.CreateCheckoutSession(context.Background(), &CheckoutInput{
			PatientID: "p-1", WorkerID: "w-1", Date: "2025-03-02", Time: "10:00",
		})
		assert.ErrorIs(t, err, domain.ErrPaymentFailed)
		assert.Empty(t, bookings.rows)
	})
}

func TestCompleteAndCancel(t *testing.T) {
	svc, bookings := newTestBookings(&stubPayments{})
	require.NoError(t, bookings.Create(context.Background(), &domain.Booking{
		ID: "b-1", PatientID: "p-1", WorkerID: "w-1", Status: domain.BookingPending,
	}))

	b, err := svc.Complete(context.Background(), auth.Identity{AccountID: "w-1", Role: domain.RoleWorker}, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	b, err = svc.Cancel(context.Background(), auth.Identity{AccountID: "p-1", Role: domain.RolePatient}, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)

	_, err = svc.Cancel(context.Background(), auth.Identity{AccountID: "a-1", Role: domain.RoleAdmin}, "b-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompleteAndCancel_OnlyPartiesOrAdmin(t *testing.T) {
	svc, bookings := newTestBookings(&stubPayments{})
	require.NoError(t, bookings.Create(context.Background(), &domain.Booking{
		ID: "b-1", PatientID: "p-1", WorkerID: "w-1", Status: domain.BookingPending,
	}))

	stranger := auth.Identity{AccountID: "p-2", Role: domain.RolePatient}
	_, err := svc.Cancel(context.Background(), stranger, "b-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	otherWorker := auth.Identity{AccountID: "w-2", Role: domain.RoleWorker}
	_, err = svc.Complete(context.Background(), otherWorker, "b-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := bookings.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, stored.Status)

	b, err := svc.Cancel(context.Background(), auth.Identity{AccountID: "a-1", Role: domain.RoleAdmin}, "b-1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}
