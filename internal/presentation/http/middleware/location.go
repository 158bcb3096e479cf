package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hmidach/librapos-api/internal/domain/entity"
	"github.com/hmidach/librapos-api/internal/domain/repository"
	infraRepo "github.com/hmidach/librapos-api/internal/infrastructure/repository"
	"github.com/hmidach/librapos-api/internal/presentation/http/dto/response"
)

// LocationHeader lets admins act on a branch other than their own
const LocationHeader = "X-Location-ID"

// LocationMiddleware resolves the branch a request operates on. Staff are
// pinned to the location in their token; admins may override it with the
// X-Location-ID header. The resolved ID is stored in the request context
// so repository queries are scoped to it.
func LocationMiddleware(locationRepo repository.LocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		locationVal, exists := c.Get("location_id")
		if !exists {
			response.Unauthorized(c, "Location context required")
			c.Abort()
			return
		}
		locationID, ok := locationVal.(uuid.UUID)
		if !ok || locationID == uuid.Nil {
			response.Unauthorized(c, "Invalid location context")
			c.Abort()
			return
		}

		if override := c.GetHeader(LocationHeader); override != "" {
			role, _ := c.Get("user_role")
			if role != entity.RoleAdmin {
				response.Forbidden(c, "Only admins can act on another location")
				c.Abort()
				return
			}

			overrideID, err := uuid.Parse(override)
			if err != nil {
				response.BadRequest(c, "Invalid location ID")
				c.Abort()
				return
			}
			location, err := locationRepo.GetByID(c.Request.Context(), overrideID)
			if err != nil || location == nil {
				response.NotFound(c, "Location not found")
				c.Abort()
				return
			}
			locationID = location.ID
		}

		c.Set("location_id", locationID)

		ctx := infraRepo.WithLocation(c.Request.Context(), locationID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetLocationID retrieves the resolved location ID from the gin context
func GetLocationID(c *gin.Context) uuid.UUID {
	locationVal, exists := c.Get("location_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := locationVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
