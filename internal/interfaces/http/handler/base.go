package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/interfaces/http/dto"
	"github.com/erp/odoo-facade/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// bindID binds the :id path parameter, answering 400 itself on failure.
func (h *BaseHandler) bindID(c *gin.Context) (int64, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return req.ID, true
}

// bindJSON binds the request body, answering with the validation envelope on
// failure.
func (h *BaseHandler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// HandleError maps an error onto the response envelope. The code comes from
// the DomainError in the chain, or REMOTE_FAULT when only saga or fault
// context is present. That context is put in detail; a saga's own message
// replaces the cause's message so partial progress is visible.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := middleware.GetRequestID(c)
	log := logger.L(c.Request.Context())

	var detailed shared.DetailedError
	hasDetail := errors.As(err, &detailed)

	var domainErr *shared.DomainError
	hasDomain := errors.As(err, &domainErr)
	if !hasDomain && !hasDetail {
		log.Error("Unhandled error", zap.Error(err))
		_ = c.Error(err)
		h.InternalError(c, "An unexpected error occurred")
		return
	}

	code := dto.NormalizeErrorCode(shared.CodeRemoteFault)
	message := err.Error()
	if hasDomain {
		code = dto.NormalizeErrorCode(domainErr.Code)
		message = domainErr.Message
	}
	status := dto.GetHTTPStatus(code)

	var detail map[string]any
	if hasDetail {
		detail = detailed.ErrorDetail()
		if _, isFault := detailed.(*integration.RemoteFault); !isFault {
			message = detailed.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		log.Warn("Remote operation failed", zap.String("code", code), zap.Error(err))
		_ = c.Error(err)
	}

	if detail != nil {
		c.JSON(status, dto.NewDetailedErrorResponse(code, message, requestID, detail))
		return
	}
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}
