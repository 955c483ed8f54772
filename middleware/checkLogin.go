package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const SignInPath = "/auth/sign-in"

// CheckLoginMiddleware aborts with 401 when no one is signed in. The
// response carries the sign-in location, with returnTo (a page path whose
// :params are filled from the request) as the place to come back to.
func CheckLoginMiddleware(returnTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("UserID"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message":  "Please sign in to continue",
				"redirect": SignInRedirect(ReturnPath(returnTo, c.Params)),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func SignInRedirect(returnPath string) string {
	return SignInPath + "?redirect=" + url.QueryEscape(returnPath)
}

// ReturnPath substitutes every :name segment of pattern with its route
// parameter.
func ReturnPath(pattern string, params gin.Params) string {
	segments := strings.Split(pattern, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = url.PathEscape(params.ByName(segment[1:]))
		}
	}
	return strings.Join(segments, "/")
}
