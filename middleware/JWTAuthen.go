package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agencydash/model"
	"agencydash/services"
)

const sessionKey = "session"

// AccessTokenMiddleware requires a valid access token and stores its
// session in the context.
func AccessTokenMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing", "redirect": model.LoginPath})
			return
		}

		bearer := strings.SplitN(header, " ", 2)
		if len(bearer) != 2 || !strings.EqualFold(bearer[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format", "redirect": model.LoginPath})
			return
		}

		claims, err := tokens.ParseAccessToken(strings.TrimSpace(bearer[1]))
		if err != nil {
			Logger(c).WithError(err).Debug("rejected access token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is expired or invalid", "redirect": model.LoginPath})
			return
		}

		c.Set(sessionKey, claims.Session)
		c.Set(loggerKey, Logger(c).WithFields(logrus.Fields{
			"user":      claims.Email,
			"dashboard": claims.Dashboard,
		}))
		c.Next()
	}
}

// SessionFrom returns the session stored by AccessTokenMiddleware.
func SessionFrom(c *gin.Context) (model.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return model.Session{}, false
	}
	s, ok := v.(model.Session)
	return s, ok
}

// RequireDashboard lets through only sessions routed to one of dashboards.
// Everyone else is pointed back at their own dashboard.
func RequireDashboard(dashboards ...model.Dashboard) gin.HandlerFunc {
	allowed := make(map[model.Dashboard]bool, len(dashboards))
	for _, d := range dashboards {
		allowed[d] = true
	}
	return func(c *gin.Context) {
		s, ok := SessionFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session not found", "redirect": model.LoginPath})
			return
		}
		if !allowed[s.Dashboard] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden", "redirect": s.Dashboard.Path()})
			return
		}
		c.Next()
	}
}
