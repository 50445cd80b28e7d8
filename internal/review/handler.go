package review

import (
	"strconv"

	"github.com/prataprai7/gymbooking-sub000/internal/api"
	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Add review
// @Description  Adds a rating and comment for a gym. One review per user per gym.
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReviewRequest  true  "Review data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /reviews [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	review, err := h.service.AddReview(c.Request.Context(), userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "review added", review)
}

// Update godoc
// @Summary      Update review
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        reviewID  path      int                  true  "Review ID"
// @Param        request   body      UpdateReviewRequest  true  "Fields to update"
// @Success      200       {object}  api.Response
// @Failure      400       {object}  api.Response
// @Failure      404       {object}  api.Response
// @Router       /reviews/{reviewID} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	reviewID, err := strconv.Atoi(c.Param("reviewID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid review ID"))
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), reviewID, userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "review updated", review)
}

// Delete godoc
// @Summary      Delete review
// @Description  Soft-deletes a review. Author or admin only.
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        reviewID  path      int  true  "Review ID"
// @Success      200       {object}  api.Response
// @Failure      403       {object}  api.Response
// @Failure      404       {object}  api.Response
// @Router       /reviews/{reviewID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	reviewID, err := strconv.Atoi(c.Param("reviewID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid review ID"))
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), reviewID, actorID, actorRole); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "review deleted", nil)
}

// ListByGym godoc
// @Summary      List gym reviews
// @Tags         reviews
// @Produce      json
// @Param        gymID  path      int  true   "Gym ID"
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  api.Response
// @Failure      404    {object}  api.Response
// @Router       /gyms/{gymID}/reviews [get]
func (h *Handler) ListByGym(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid gym ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, total, err := h.service.ListGymReviews(c.Request.Context(), gymID, page, limit)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Paginated(c, reviews, api.NewPagination(page, limit, total))
}
