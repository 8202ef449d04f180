package handlers

import (
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/pagination"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler serves the patient, worker and admin profile endpoints
type AccountHandler struct {
	accounts *services.AccountService
	bookings *services.BookingService
	reviews  *services.ReviewService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	accounts *services.AccountService,
	bookings *services.BookingService,
	reviews *services.ReviewService,
) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		bookings: bookings,
		reviews:  reviews,
	}
}

// ============================================================
// Patients (/users)
// ============================================================

// GetPatient returns one patient
// @Summary Get patient
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *AccountHandler) GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	if !canActOn(c, id) {
		return response.Forbidden(c, "Access denied! You do not have permission")
	}

	profile, err := h.accounts.Get(c.UserContext(), domain.KindPatient, id)
	if err != nil {
		return respondError(c, err, "Failed to fetch user")
	}
	return response.Success(c, "User found", profile)
}

// ListPatients lists patients (admin)
// @Summary List patients
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Response
// @Router /users [get]
func (h *AccountHandler) ListPatients(c *fiber.Ctx) error {
	return h.list(c, domain.KindPatient, "")
}

// UpdatePatient updates a patient
// @Summary Update patient
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param body body services.UpdateAccountInput true "Fields to update"
// @Success 200 {object} response.Response
// @Router /users/{id} [put]
func (h *AccountHandler) UpdatePatient(c *fiber.Ctx) error {
	return h.update(c, domain.KindPatient, "User updated successfully")
}

// DeletePatient deletes a patient
// @Summary Delete patient
// @Tags Users
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Router /users/{id} [delete]
func (h *AccountHandler) DeletePatient(c *fiber.Ctx) error {
	return h.delete(c, domain.KindPatient, "User deleted successfully")
}

// PatientProfile returns the caller's patient profile
// @Summary My patient profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/profile/me [get]
func (h *AccountHandler) PatientProfile(c *fiber.Ctx) error {
	profile, err := h.accounts.Get(c.UserContext(), domain.KindPatient, identity(c).AccountID)
	if err != nil {
		return respondError(c, err, "Failed to fetch profile")
	}
	return response.Success(c, "Profile info is getting", profile)
}

// PatientAppointments returns the caller's bookings
// @Summary My appointments
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/appointments/my-appointments [get]
func (h *AccountHandler) PatientAppointments(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListForPatient(c.UserContext(), identity(c).AccountID)
	if err != nil {
		return respondError(c, err, "Failed to fetch appointments")
	}
	return response.Success(c, "Appointments are getting", bookings)
}

// ============================================================
// Workers (/workers)
// ============================================================

// GetWorker returns one worker with its reviews
// @Summary Get worker
// @Tags Workers
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /workers/{id} [get]
func (h *AccountHandler) GetWorker(c *fiber.Ctx) error {
	id := c.Params("id")
	profile, err := h.accounts.Get(c.UserContext(), domain.KindWorker, id)
	if err != nil {
		return respondError(c, err, "No worker found")
	}

	reviews, err := h.reviews.List(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "No worker found")
	}

	return response.Success(c, "Worker found", fiber.Map{
		"worker":  profile,
		"reviews": reviews,
	})
}

// ListWorkers lists workers; a query searches approved workers by name or specialization
// @Summary List workers
// @Tags Workers
// @Produce json
// @Param query query string false "Search by name or specialization"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Response
// @Router /workers [get]
func (h *AccountHandler) ListWorkers(c *fiber.Ctx) error {
	return h.list(c, domain.KindWorker, c.Query("query"))
}

// UpdateWorker updates a worker
// @Summary Update worker
// @Tags Workers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param body body services.UpdateAccountInput true "Fields to update"
// @Success 200 {object} response.Response
// @Router /workers/{id} [put]
func (h *AccountHandler) UpdateWorker(c *fiber.Ctx) error {
	return h.update(c, domain.KindWorker, "Worker updated successfully")
}

// DeleteWorker deletes a worker
// @Summary Delete worker
// @Tags Workers
// @Security BearerAuth
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Response
// @Router /workers/{id} [delete]
func (h *AccountHandler) DeleteWorker(c *fiber.Ctx) error {
	return h.delete(c, domain.KindWorker, "Worker deleted successfully")
}

// WorkerProfile returns the caller's worker profile and appointments
// @Summary My worker profile
// @Tags Workers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /workers/profile/me [get]
func (h *AccountHandler) WorkerProfile(c *fiber.Ctx) error {
	id := identity(c).AccountID
	profile, err := h.accounts.Get(c.UserContext(), domain.KindWorker, id)
	if err != nil {
		return respondError(c, err, "Failed to fetch worker profile")
	}

	appointments, err := h.bookings.ListForWorker(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch worker profile")
	}

	return response.Success(c, "Worker profile fetched successfully", fiber.Map{
		"profile":      profile,
		"appointments": appointments,
	})
}

// ApproveWorker approves a worker (admin)
// @Summary Approve worker
// @Tags Workers
// @Security BearerAuth
// @Param id path string true "Worker ID"
// @Success 200 {object} response.Response
// @Router /workers/approve-worker/{id} [patch]
func (h *AccountHandler) ApproveWorker(c *fiber.Ctx) error {
	profile, err := h.accounts.ApproveWorker(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to approve worker")
	}
	return response.Success(c, "Worker approved successfully", profile)
}

// ============================================================
// Admins (/admin)
// ============================================================

// AdminProfile returns the caller's admin profile
// @Summary My admin profile
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/profile/me [get]
func (h *AccountHandler) AdminProfile(c *fiber.Ctx) error {
	profile, err := h.accounts.Get(c.UserContext(), domain.KindAdmin, identity(c).AccountID)
	if err != nil {
		return respondError(c, err, "Failed to fetch admin profile")
	}
	return response.Success(c, "Admin profile fetched successfully", profile)
}

// UpdateAdmin updates an admin
// @Summary Update admin
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Admin ID"
// @Param body body services.UpdateAccountInput true "Fields to update"
// @Success 200 {object} response.Response
// @Router /admin/{id} [put]
func (h *AccountHandler) UpdateAdmin(c *fiber.Ctx) error {
	return h.update(c, domain.KindAdmin, "Admin updated successfully")
}

// ============================================================
// Shared
// ============================================================

func (h *AccountHandler) list(c *fiber.Ctx, kind domain.Kind, query string) error {
	params := pagination.GetParams(c)

	profiles, total, err := h.accounts.List(c.UserContext(), kind, &services.ListAccountsInput{
		Offset: params.Offset,
		Limit:  params.Limit,
		Query:  query,
	})
	if err != nil {
		return respondError(c, err, "Failed to list accounts")
	}

	return c.JSON(pagination.NewResponse(profiles, params, total))
}

func (h *AccountHandler) update(c *fiber.Ctx, kind domain.Kind, message string) error {
	id := c.Params("id")
	if !canActOn(c, id) {
		return response.Forbidden(c, "Access denied! You do not have permission")
	}

	var req services.UpdateAccountInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.accounts.Update(c.UserContext(), kind, id, &req)
	if err != nil {
		return respondError(c, err, "Failed to update")
	}
	return response.Success(c, message, profile)
}

func (h *AccountHandler) delete(c *fiber.Ctx, kind domain.Kind, message string) error {
	id := c.Params("id")
	if !canActOn(c, id) {
		return response.Forbidden(c, "Access denied! You do not have permission")
	}

	if err := h.accounts.Delete(c.UserContext(), kind, id); err != nil {
		return respondError(c, err, "Failed to delete")
	}
	return response.Success(c, message, nil)
}
