package middleware

import "github.com/gin-gonic/gin"

const ContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline'; font-src 'self' data:;"

// SecurityHeadersMiddleware forbids cross-origin framing and sets the
// content security policy for browser clients.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Content-Security-Policy", ContentSecurityPolicy)
		c.Next()
	}
}
