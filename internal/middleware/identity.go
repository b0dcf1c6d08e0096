package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ctxUserKey is the Echo context key under which JWTAuth stores the
// authenticated identity.
const ctxUserKey = "current_user"

// CurrentUser is the authenticated identity extracted from an access token.
type CurrentUser struct {
	ID   uint64
	Role string
}

// UserFrom returns the identity injected by JWTAuth. The second return is
// false on routes that are not behind JWTAuth.
func UserFrom(c echo.Context) (CurrentUser, bool) {
	u, ok := c.Get(ctxUserKey).(CurrentUser)
	return u, ok
}

// identity returns a stable per-user key fragment for rate limiting and
// response caching. Anonymous requests share the "guest" bucket.
func identity(c echo.Context) string {
	if u, ok := UserFrom(c); ok {
		return "u" + strconv.FormatUint(u.ID, 10)
	}
	return "guest"
}
