package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	approvaldomain "github.com/sehatmu/amalan/internal/approval/domain"
	catalogdomain "github.com/sehatmu/amalan/internal/catalog/domain"
	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
	reportdomain "github.com/sehatmu/amalan/internal/report/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware renders the last collected error as the JSON
// body once the handler chain is done.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, reportdomain.ErrInvalidEmployee),
		errors.Is(err, reportdomain.ErrInvalidMonthKey),
		errors.Is(err, reportdomain.ErrInvalidYear),
		errors.Is(err, reportdomain.ErrInvalidPeriod),
		errors.Is(err, reportdomain.ErrInvalidGroupBy),
		errors.Is(err, reportdomain.ErrNoEmployees),
		errors.Is(err, approvaldomain.ErrInvalidEmployee),
		errors.Is(err, approvaldomain.ErrInvalidMonthKey),
		errors.Is(err, eventdomain.ErrInvalidMonthKey),
		errors.Is(err, eventdomain.ErrInvalidRange),
		errors.Is(err, catalogdomain.ErrUnknownActivity),
		errors.Is(err, catalogdomain.ErrInvalidTarget):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, employeedomain.ErrEmployeeNotFound),
		errors.Is(err, approvaldomain.ErrNotSubmitted),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, approvaldomain.ErrAlreadyApproved),
		errors.Is(err, approvaldomain.ErrInvalidTransition):
		return true
	default:
		return false
	}
}
