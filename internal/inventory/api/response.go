package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stokku/grocery-inventory/internal/inventory/domain"
	"github.com/stokku/grocery-inventory/internal/inventory/repository"
	"github.com/stokku/grocery-inventory/internal/platform/config"
	"github.com/stokku/grocery-inventory/internal/platform/logger"
)

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the uniform failure envelope. Errors is always present,
// empty when there is nothing to itemize.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// respondError is the single place domain outcomes become status codes.
// Not-found and validation failures are expected outcomes; anything else is
// an infrastructure fault reported as a 500, with diagnostic detail exposed
// only outside production.
func respondError(c *gin.Context, op string, err error) {
	if errors.Is(err, repository.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Message: "Item not found",
			Errors:  []string{},
		})
		return
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: vErr.Message,
			Errors:  vErr.Errors,
		})
		return
	}

	logger.Error("Hdl."+op+": service error", err)
	detail := []string{}
	if !config.IsProduction() {
		detail = append(detail, err.Error())
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Success: false,
		Message: "Internal Server Error",
		Errors:  detail,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Message: message,
		Errors:  []string{},
	})
}
