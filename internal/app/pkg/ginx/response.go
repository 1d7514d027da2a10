package ginx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"retailos/internal/app/pkg/errorx"
)

// Response uniform response envelope
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta status block
type Meta struct {
	Code    int           `json:"code" example:"200"`
	Message string        `json:"message" example:"OK"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail one validation or business detail
type ErrorDetail struct {
	Path string `json:"path" example:"customer_id"`
	Info string `json:"info" example:"customer_id is required"`
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Meta: Meta{Code: http.StatusOK, Message: "OK"},
		Data: data,
	})
}

// Error plain error response
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Meta: Meta{Code: httpCode, Message: message},
	})
}

// ErrorWithDetails error response with details
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Meta: Meta{Code: httpCode, Message: message, Details: details},
	})
}

// Conflict 409 with a structured body the caller can re-offer from
func Conflict(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusConflict, Response{
		Meta: Meta{Code: http.StatusConflict, Message: message},
		Data: data,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400 with per-field validation details
func BadRequestWithValidation(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, ErrorDetail{
				Path: fieldErr.Field(),
				Info: getValidationErrorMessage(fieldErr),
			})
		}
		ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details)
		return
	}

	BadRequest(c, err.Error())
}

// BusinessError renders an errorx.BusinessError with its own code
func BusinessError(c *gin.Context, err *errorx.BusinessError) {
	details := make([]ErrorDetail, 0, len(err.Details))
	for _, d := range err.Details {
		details = append(details, ErrorDetail{Path: d.Path, Info: d.Info})
	}
	ErrorWithDetails(c, err.Code, err.Message, details)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "too many requests")
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func getValidationErrorMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "gt":
		return fieldErr.Field() + " must be greater than " + fieldErr.Param()
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param()
	case "max":
		return fieldErr.Field() + " must be at most " + fieldErr.Param()
	case "oneof":
		return fieldErr.Field() + " must be one of " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}
