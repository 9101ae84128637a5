package guard

import (
	"net/http"

	"eventmart/internal/identity"

	"github.com/gin-gonic/gin"
)

// CtxIdentityKey is where the auth middleware parks the resolved
// principal for the request.
const CtxIdentityKey = "identity"

// IdentityFrom returns the request's principal, if one was resolved.
func IdentityFrom(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*identity.Identity)
	return ident, ok
}

// Require enforces an Authorize decision on the request. By the time a
// request reaches here identity resolution has already happened, so the
// Pending decision cannot occur on this path.
func Require(allowed ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := IdentityFrom(c)

		switch Authorize(ident, true, allowed) {
		case Allow:
			c.Next()
		case RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/login",
			})
		case RedirectUnauthorized:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "role not allowed",
				"redirect": RoleHome(ident.Role),
			})
		}
	}
}
