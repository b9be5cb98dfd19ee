package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
)

func SessionController(router *gin.Engine, deps *controller.Deps) {
	public := router.Group("/auth", deps.AuthHandlers()...)
	{
		public.POST("/refresh", func(c *gin.Context) {
			Refresh(c, deps)
		})
	}

	private := router.Group("/auth", deps.Authenticated()...)
	{
		private.GET("/me", Me)
	}
}

// Refresh trades a refresh token for a new pair. The session is rebuilt
// from the employee record so role changes apply.
func Refresh(c *gin.Context, deps *controller.Deps) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	session, err := deps.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.Logger(c).WithError(err).Info("refresh rejected")
		controller.RespondError(c, err)
		return
	}
	pair, err := deps.Auth.IssueTokens(session)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Token refreshed",
		"token":    pair,
		"session":  session,
		"redirect": session.Dashboard.Path(),
	})
}

// Me returns the caller's session context.
func Me(c *gin.Context) {
	session := controller.Session(c)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Session:  session,
		Redirect: session.Dashboard.Path(),
	})
}
