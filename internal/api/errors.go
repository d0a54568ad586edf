package api

import (
	"errors"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/service"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and aborts the request.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		fields := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			fields[f.Field] = f.Error
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": fields})
		return
	}

	code, message := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		log.Printf("WARN: %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	abortWithError(c, code, message)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrInstructorOnly),
		errors.Is(err, service.ErrAssignmentAccessDenied),
		errors.Is(err, service.ErrNotOnRoster):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrPerformedNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAssignmentHasCompletions):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, service.ErrWriteFailed):
		return http.StatusInternalServerError, "Could not save changes"
	default:
		return http.StatusInternalServerError, "An unexpected error occurred"
	}
}

// bindJSON binds the request body and aborts with 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
