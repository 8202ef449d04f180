package handlers

import (
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles worker review endpoints
type ReviewHandler struct {
	reviewService *services.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents review request body
type CreateReviewRequest struct {
	Worker     string `json:"worker"`
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// List returns reviews, scoped to a worker when mounted under /workers/:workerId
// @Summary List reviews
// @Tags Reviews
// @Produce json
// @Success 200 {object} response.Response
// @Router /reviews [get]
// @Router /workers/{workerId}/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviewService.List(c.UserContext(), c.Params("workerId"))
	if err != nil {
		return respondError(c, err, "Failed to fetch reviews")
	}
	return response.Success(c, "Successful", reviews)
}

// Create stores a review written by the calling patient
// @Summary Create review
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body CreateReviewRequest true "Review"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reviews [post]
// @Router /workers/{workerId}/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	workerID := c.Params("workerId")
	if workerID == "" {
		workerID = req.Worker
	}

	review, err := h.reviewService.Create(c.UserContext(), &services.CreateReviewInput{
		WorkerID:   workerID,
		PatientID:  identity(c).AccountID,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	})
	if err != nil {
		return respondError(c, err, "Failed to submit review")
	}

	return response.Success(c, "Review submitted", review)
}
