package membership

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
// @Summary      Purchase membership
// @Description  Buys a monthly or yearly membership at a gym for the caller.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMembershipRequest  true  "Membership data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Failure      409      {object}  api.Response
// @Router       /memberships [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	membership, err := h.service.CreateMembership(c.Request.Context(), userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "membership created", membership)
}

// UpdateStatus godoc
// @Summary      Update membership status
// @Description  Moves the caller's membership through its lifecycle, e.g. on payment confirmation.
// @Tags         memberships
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        membershipID  path      int                  true  "Membership ID"
// @Param        request       body      UpdateStatusRequest  true  "Status fields"
// @Success      200           {object}  api.Response
// @Failure      400           {object}  api.Response
// @Failure      404           {object}  api.Response
// @Failure      409           {object}  api.Response
// @Router       /memberships/{membershipID}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	membershipID, err := strconv.Atoi(c.Param("membershipID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid membership ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	membership, err := h.service.UpdateMembershipStatus(c.Request.Context(), membershipID, userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "membership status updated", membership)
}

// Cancel godoc
// @Summary      Cancel membership
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Param        membershipID  path      int  true  "Membership ID"
// @Success      200           {object}  api.Response
// @Failure      404           {object}  api.Response
// @Failure      409           {object}  api.Response
// @Router       /memberships/{membershipID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	membershipID, err := strconv.Atoi(c.Param("membershipID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid membership ID"))
		return
	}

	membership, err := h.service.CancelMembership(c.Request.Context(), membershipID, userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "membership cancelled", membership)
}

// ListMy godoc
// @Summary      List my memberships
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /memberships [get]
func (h *Handler) ListMy(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	memberships, err := h.service.ListMyMemberships(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "", memberships)
}

// ListExpiring godoc
// @Summary      List memberships expiring within 7 days
// @Tags         memberships
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response
// @Router       /memberships/expiring [get]
func (h *Handler) ListExpiring(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	memberships, err := h.service.ListExpiring(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "", memberships)
}
