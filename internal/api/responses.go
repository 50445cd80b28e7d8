package api

import (
	"net/http"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func NewPagination(page, limit, totalItems int) *Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := (totalItems + limit - 1) / limit
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
	}
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Pagination: p})
}

// Fail maps a rule-layer error onto its HTTP status and envelope.
func Fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), Response{Success: false, Message: apperr.Message(err)})
}

func FailWith(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

func FailValidation(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: "validation failed", Errors: errs})
}
