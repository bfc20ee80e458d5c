package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staynest/service-rental/internal/domain"
)

// Success writes a 200 response with the data wrapped in the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the data wrapped in the standard envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// Paginated writes a 200 response with items and pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error classifies a domain error and writes the matching status code.
// Unclassified errors become an opaque 500; their details belong in logs,
// not responses.
func Error(c *gin.Context, err error) {
	var (
		validationErr    *domain.ValidationError
		notFoundErr      *domain.NotFoundError
		forbiddenErr     *domain.ForbiddenError
		conflictErr      *domain.ConflictError
		invalidStateErr  *domain.InvalidStateError
		alreadyExistsErr *domain.AlreadyExistsError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &forbiddenErr):
		c.JSON(http.StatusForbidden, gin.H{"error": forbiddenErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	case errors.As(err, &invalidStateErr):
		c.JSON(http.StatusConflict, gin.H{"error": invalidStateErr.Error()})
	case errors.As(err, &alreadyExistsErr):
		c.JSON(http.StatusConflict, gin.H{"error": alreadyExistsErr.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
