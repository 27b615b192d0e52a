package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bulkdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/domain"
	pricewatchdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
	recoverydomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	sharedomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/domain"
	snapshotdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/domain"
)

type apiError struct {
	status  int
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() *apiError {
	return &apiError{status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

var notFoundErrors = []error{
	snapshotdomain.ErrNotFound,
	sharedomain.ErrNotFound,
	pricewatchdomain.ErrNotFound,
	recoverydomain.ErrNotFound,
}

var forbiddenErrors = []error{
	sharedomain.ErrPasswordMismatch,
	sharedomain.ErrForbidden,
}

var conflictErrors = []error{
	recoverydomain.ErrDuplicateSession,
	pricewatchdomain.ErrWatchCapped,
}

var validationErrors = []error{
	snapshotdomain.ErrInvalidCustomer,
	snapshotdomain.ErrInvalidName,
	snapshotdomain.ErrInvalidLine,
	snapshotdomain.ErrInvalidID,
	sharedomain.ErrInvalidSnapshot,
	sharedomain.ErrInvalidIssuer,
	sharedomain.ErrInvalidAccessLevel,
	sharedomain.ErrInvalidID,
	bulkdomain.ErrInvalidOperation,
	bulkdomain.ErrInvalidExecutor,
	bulkdomain.ErrInvalidQuantity,
	bulkdomain.ErrInvalidTargets,
	pricewatchdomain.ErrInvalidCustomer,
	pricewatchdomain.ErrInvalidProduct,
	pricewatchdomain.ErrInvalidTarget,
	pricewatchdomain.ErrInvalidChannel,
	pricewatchdomain.ErrInvalidCap,
	pricewatchdomain.ErrInvalidID,
	recoverydomain.ErrInvalidSession,
	recoverydomain.ErrInvalidStage,
	recoverydomain.ErrInvalidEngagement,
}

// AbortWithError translates domain errors into the API's 4xx/5xx surface.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.status, gin.H{"error": apiErr})
		return
	}

	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": gin.H{"code": sentinel.Error()}})
			return
		}
	}
	for _, sentinel := range forbiddenErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"code": sentinel.Error()}})
			return
		}
	}
	for _, sentinel := range conflictErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": gin.H{"code": sentinel.Error()}})
			return
		}
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": sentinel.Error()}})
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error"}})
}
