package handlers

import (
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookingHandler handles appointment booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CheckoutRequest represents checkout request body
type CheckoutRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Checkout opens a payment session for an appointment with a worker
// @Summary Create checkout session
// @Tags Bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param workerId path string true "Worker ID"
// @Param body body CheckoutRequest true "Appointment date (YYYY-MM-DD) and time (HH:MM)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/checkout-session/{workerId} [post]
func (h *BookingHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	workerID := c.Params("workerId")
	result, err := h.bookingService.CreateCheckoutSession(c.UserContext(), &services.CheckoutInput{
		PatientID: identity(c).AccountID,
		WorkerID:  workerID,
		Date:      req.Date,
		Time:      req.Time,
		CancelURL: c.Protocol() + "://" + c.Hostname() + "/workers/" + workerID,
	})
	if err != nil {
		return respondError(c, err, "Error creating checkout session")
	}

	return response.SuccessWith(c, "Successfully paid", result.Booking, fiber.Map{
		"session": result.Session,
	})
}

// Complete marks an appointment as completed
// @Summary Complete booking
// @Tags Bookings
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/complete/{bookingId} [put]
func (h *BookingHandler) Complete(c *fiber.Ctx) error {
	booking, err := h.bookingService.Complete(c.UserContext(), identity(c), c.Params("bookingId"))
	if err != nil {
		return respondError(c, err, "Failed to complete booking")
	}
	return response.Success(c, "Booking completed", booking)
}

// Cancel marks an appointment as cancelled
// @Summary Cancel booking
// @Tags Bookings
// @Security BearerAuth
// @Param bookingId path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/cancel/{bookingId} [put]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	booking, err := h.bookingService.Cancel(c.UserContext(), identity(c), c.Params("bookingId"))
	if err != nil {
		return respondError(c, err, "Failed to cancel booking")
	}
	return response.Success(c, "Booking cancelled", booking)
}

// MyAppointments lists the caller's appointments; workers see bookings made with them
// @Summary My bookings
// @Tags Bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /bookings/my-appointments [get]
func (h *BookingHandler) MyAppointments(c *fiber.Ctx) error {
	caller := identity(c)

	var (
		bookings []*domain.Booking
		err      error
	)
	if caller.Role == domain.RoleWorker {
		bookings, err = h.bookingService.ListForWorker(c.UserContext(), caller.AccountID)
	} else {
		bookings, err = h.bookingService.ListForPatient(c.UserContext(), caller.AccountID)
	}
	if err != nil {
		return respondError(c, err, "Failed to fetch appointments")
	}

	return response.Success(c, "Appointments are getting", bookings)
}
