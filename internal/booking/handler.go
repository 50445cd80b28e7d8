package booking

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

// CreateBooking godoc
// @Summary      Create booking
// @Description  Reserves a date range at a gym for the calling user.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "booking created", booking)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels the caller's booking, at least 24h before start.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                   true   "Booking ID"
// @Param        request    body      CancelBookingRequest  false  "Cancellation reason"
// @Success      200        {object}  api.Response
// @Failure      404        {object}  api.Response
// @Failure      409        {object}  api.Response
// @Failure      422        {object}  api.Response
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid booking ID"))
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	booking, err := h.service.CancelBooking(c.Request.Context(), bookingID, userID, req.Reason)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "booking cancelled", booking)
}

// UpdateStatus godoc
// @Summary      Update booking status
// @Description  Moves a booking through its lifecycle. Gym owner or admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                  true  "Booking ID"
// @Param        request    body      UpdateStatusRequest  true  "Status fields"
// @Success      200        {object}  api.Response
// @Failure      400        {object}  api.Response
// @Failure      403        {object}  api.Response
// @Failure      404        {object}  api.Response
// @Failure      409        {object}  api.Response
// @Router       /bookings/{bookingID}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid booking ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	booking, err := h.service.UpdateBookingStatus(c.Request.Context(), bookingID, actorID, actorRole, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "booking status updated", booking)
}

// GetBooking godoc
// @Summary      Get booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.Response
// @Failure      404        {object}  api.Response
// @Router       /bookings/{bookingID} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid booking ID"))
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), bookingID, actorID, actorRole)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "", booking)
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  api.Response
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bookings, total, err := h.service.GetUserBookings(c.Request.Context(), userID, page, limit)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Paginated(c, bookings, api.NewPagination(page, limit, total))
}

// ListBookingsByGym godoc
// @Summary      List bookings by gym
// @Description  Returns all bookings at a gym. Gym owner or admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        gymID  path      int  true   "Gym ID"
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  api.Response
// @Failure      403    {object}  api.Response
// @Failure      404    {object}  api.Response
// @Router       /owner/gyms/{gymID}/bookings [get]
func (h *Handler) ListBookingsByGym(c *gin.Context) {
	actorID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}
	actorRole, _ := auth.GetUserRole(c)

	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid gym ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bookings, total, err := h.service.GetBookingsByGym(c.Request.Context(), gymID, actorID, actorRole, page, limit)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Paginated(c, bookings, api.NewPagination(page, limit, total))
}
