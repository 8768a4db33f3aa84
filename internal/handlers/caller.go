package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"withdrawal-service/internal/services"
	"withdrawal-service/pkg/common"
)

const (
	HeaderUserID         = "X-User-Id"
	HeaderUserRole       = "X-User-Role"
	HeaderIdempotencyKey = "Idempotency-Key"

	callerKey = "caller"
)

// RequireCaller resolves the acting user from headers set by the gateway.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader(HeaderUserID), 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("missing or invalid "+HeaderUserID+" header", nil, http.StatusUnauthorized))
			return
		}

		role := services.Role(strings.ToUpper(strings.TrimSpace(c.GetHeader(HeaderUserRole))))
		switch role {
		case "":
			role = services.RoleDepositor
		case services.RoleDepositor, services.RoleTreasurer, services.RoleCommittee, services.RoleAdmin:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				common.NewErrorResponse("unknown role "+string(role), nil, http.StatusUnauthorized))
			return
		}

		c.Set(callerKey, services.Caller{ID: uint(id), Role: role})
		c.Next()
	}
}

// RequirePrivileged stops depositors from reaching staff-only routes.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !callerFrom(c).Privileged() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				common.NewErrorResponse("insufficient role", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}

func callerFrom(c *gin.Context) services.Caller {
	v, _ := c.Get(callerKey)
	caller, _ := v.(services.Caller)
	return caller
}
