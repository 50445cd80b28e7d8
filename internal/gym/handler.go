package gym

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

// CreateGym godoc
// @Summary      Create gym
// @Description  Registers a new gym owned by the calling gym_owner.
// @Tags         gyms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGymRequest  true  "Gym data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      403      {object}  api.Response
// @Router       /owner/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		api.Fail(c, apperr.Authentication("user not authenticated"))
		return
	}

	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	gym, err := h.service.CreateGym(c.Request.Context(), ownerID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "gym created", gym)
}

// ListGyms godoc
// @Summary      List gyms
// @Description  Returns active gyms, best rated first.
// @Tags         gyms
// @Produce      json
// @Param        location  query     string  false  "Filter by location substring"
// @Param        verified  query     bool    false  "Only verified gyms"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  api.Response
// @Router       /gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ListFilter{
		Location:     c.Query("location"),
		VerifiedOnly: c.Query("verified") == "true",
		Page:         page,
		Limit:        limit,
	}

	gyms, total, err := h.service.ListGyms(c.Request.Context(), filter)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Paginated(c, gyms, api.NewPagination(page, limit, total))
}

// GetGym godoc
// @Summary      Get gym
// @Tags         gyms
// @Produce      json
// @Param        gymID  path      int  true  "Gym ID"
// @Success      200    {object}  api.Response
// @Failure      404    {object}  api.Response
// @Router       /gyms/{gymID} [get]
func (h *Handler) GetGym(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid gym ID"))
		return
	}

	gym, err := h.service.GetGymByID(c.Request.Context(), gymID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "", gym)
}

// UpdateGym godoc
// @Summary      Update gym
// @Description  Updates gym fields. Owner or admin only.
// @Tags         gyms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID    path      int               true  "Gym ID"
// @Param        request  body      UpdateGymRequest  true  "Fields to update"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      403      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Router       /owner/gyms/{gymID} [put]
func (h *Handler) UpdateGym(c *gin.Context) {
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

	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation(err.Error()))
		return
	}

	gym, err := h.service.UpdateGym(c.Request.Context(), gymID, actorID, actorRole, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "gym updated", gym)
}

// SetVerified godoc
// @Summary      Verify gym
// @Description  Sets the verification flag. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID    path      int              true  "Gym ID"
// @Param        request  body      map[string]bool  true  "{\"verified\": true}"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Router       /admin/gyms/{gymID}/verify [put]
func (h *Handler) SetVerified(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid gym ID"))
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("verified flag is required"))
		return
	}

	if err := h.service.SetVerified(c.Request.Context(), gymID, *req.Verified); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "gym verification updated", nil)
}

// SetActive godoc
// @Summary      Activate or deactivate gym
// @Description  Sets the active flag. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        gymID    path      int              true  "Gym ID"
// @Param        request  body      map[string]bool  true  "{\"active\": false}"
// @Success      200      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Failure      404      {object}  api.Response
// @Router       /admin/gyms/{gymID}/active [put]
func (h *Handler) SetActive(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		api.Fail(c, apperr.Validation("invalid gym ID"))
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("active flag is required"))
		return
	}

	if err := h.service.SetActive(c.Request.Context(), gymID, *req.Active); err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "gym active flag updated", nil)
}
