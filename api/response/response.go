// Package response is the single place where domain errors become HTTP
// statuses. Handlers pass errors straight through; internal details are
// logged but never sent to clients.
package response

import (
	stdErrors "errors"
	"net/http"

	"shopcore/application/auth"
	"shopcore/domain/blog"
	"shopcore/domain/cart"
	"shopcore/domain/catalog"
	"shopcore/domain/coupon"
	"shopcore/domain/customer"
	"shopcore/domain/order"
	"shopcore/domain/review"
	"shopcore/infrastructure/identity"
	"shopcore/pkg/errors"
	"shopcore/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey is the gin context key carrying the request id.
const RequestIDKey = "request_id"

type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:       http.StatusInternalServerError,
	errors.CodeBadRequest:     http.StatusBadRequest,
	errors.CodeUnauthorized:   http.StatusUnauthorized,
	errors.CodeForbidden:      http.StatusForbidden,
	errors.CodeNotFound:       http.StatusNotFound,
	errors.CodeConflict:       http.StatusConflict,
	errors.CodeTooManyRequest: http.StatusTooManyRequests,
	errors.CodeValidation:     http.StatusBadRequest,

	errors.CodeOrderNotFound:       http.StatusNotFound,
	errors.CodeOrderNotCancellable: http.StatusUnprocessableEntity,
	errors.CodeInsufficientStock:   http.StatusConflict,
	errors.CodePaymentNotVerified:  http.StatusUnprocessableEntity,
	errors.CodeProductNotFound:     http.StatusNotFound,
	errors.CodeAddressNotFound:     http.StatusNotFound,
	errors.CodeCouponNotFound:      http.StatusNotFound,
	errors.CodeConcurrentModify:    http.StatusConflict,
	errors.CodeInvalidOTP:          http.StatusBadRequest,
}

// sentinelMapping translates domain sentinel errors into application
// error codes with caller-safe messages.
var sentinelMapping = []struct {
	err     error
	code    errors.ErrorCode
	message string
}{
	{order.ErrOrderNotFound, errors.CodeOrderNotFound, "order not found"},
	{order.ErrNotCancellable, errors.CodeOrderNotCancellable, "order can no longer be cancelled"},
	{order.ErrNotOwned, errors.CodeForbidden, "order belongs to another user"},
	{order.ErrInvalidTransition, errors.CodeConflict, "invalid order status transition"},
	{order.ErrConcurrentModification, errors.CodeConcurrentModify, "order was modified concurrently, please retry"},
	{order.ErrPaymentNotVerified, errors.CodePaymentNotVerified, "bank transfer could not be verified; the order was cancelled"},
	{order.ErrEmptyItems, errors.CodeValidation, "order must contain at least one item"},
	{order.ErrInvalidQuantity, errors.CodeValidation, "item quantity must be at least 1"},
	{order.ErrNumberExhausted, errors.CodeInternal, "internal server error"},

	{catalog.ErrProductNotFound, errors.CodeProductNotFound, "product not found"},
	{catalog.ErrInsufficientStock, errors.CodeInsufficientStock, "not enough stock available"},
	{catalog.ErrProductInactive, errors.CodeValidation, "product is not available"},
	{catalog.ErrCategoryNotFound, errors.CodeNotFound, "category not found"},
	{catalog.ErrManufacturerNotFound, errors.CodeNotFound, "manufacturer not found"},
	{catalog.ErrPublisherNotFound, errors.CodeNotFound, "publisher not found"},
	{catalog.ErrDuplicateSlug, errors.CodeConflict, "slug already exists"},

	{coupon.ErrCouponNotFound, errors.CodeCouponNotFound, "coupon not found"},
	{coupon.ErrCouponExhausted, errors.CodeConflict, "coupon has no remaining uses"},
	{coupon.ErrDuplicateCode, errors.CodeConflict, "coupon code already exists"},

	{customer.ErrAddressNotFound, errors.CodeAddressNotFound, "address not found"},
	{customer.ErrAddressNotOwned, errors.CodeForbidden, "address belongs to another user"},
	{customer.ErrAddressInactive, errors.CodeValidation, "address is not active"},

	{cart.ErrItemNotFound, errors.CodeNotFound, "cart item not found"},

	{review.ErrReviewNotFound, errors.CodeNotFound, "review not found"},
	{review.ErrAlreadyReviewed, errors.CodeConflict, "product already reviewed"},
	{review.ErrInvalidRating, errors.CodeValidation, "rating must be between 1 and 5"},

	{blog.ErrPostNotFound, errors.CodeNotFound, "post not found"},
	{blog.ErrCommentNotFound, errors.CodeNotFound, "comment not found"},
	{blog.ErrNotPostAuthor, errors.CodeForbidden, "only the author may do this"},
	{blog.ErrDuplicateSlug, errors.CodeConflict, "slug already exists"},

	{auth.ErrInvalidOTP, errors.CodeInvalidOTP, "invalid or expired verification code"},
	{auth.ErrInvalidResetToken, errors.CodeInvalidOTP, "invalid or expired reset token"},
	{identity.ErrInvalidCredentials, errors.CodeUnauthorized, "invalid credentials"},
	{identity.ErrEmailTaken, errors.CodeConflict, "email is already registered"},
	{identity.ErrUserNotFound, errors.CodeNotFound, "user not found"},
}

// toAppError resolves any error to an AppError, checking sentinels
// first. Unmatched errors become internal errors.
func toAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}
	for _, m := range sentinelMapping {
		if stdErrors.Is(err, m.err) {
			return errors.Wrap(err, m.code, m.message)
		}
	}
	return errors.Wrap(err, errors.CodeInternal, "internal server error")
}

func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	if status, ok := httpStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetRequestID returns the request id set by the middleware, or "".
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// HandleError reports framework-level failures such as binding errors.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := GetRequestID(c)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps a service error to its HTTP status. The full
// error chain goes to the log; the client only sees the code and the
// safe message.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	appErr := toAppError(err)
	httpStatus := mapErrorCodeToHTTPStatus(appErr.Code)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if httpStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, fields...)
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: GetRequestID(c),
	})
}

func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: GetRequestID(c),
	})
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func HandlePaginated(c *gin.Context, data interface{}, pagination Pagination, message string) {
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  GetRequestID(c),
	})
}

// NewPagination fills in the derived total-pages field.
func NewPagination(page, pageSize int, totalItems int64) Pagination {
	totalPages := int(totalItems) / pageSize
	if int(totalItems)%pageSize != 0 {
		totalPages++
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
