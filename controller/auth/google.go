package auth

import (
	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
)

// IDTokenController signs in with a Firebase Auth ID token, the way
// accounts managed by the identity provider (super admins) log in.
func IDTokenController(router *gin.Engine, deps *controller.Deps) {
	routes := router.Group("/auth", deps.AuthHandlers()...)
	{
		routes.POST("/token", func(c *gin.Context) {
			SignInWithIDToken(c, deps)
		})
	}
}

func SignInWithIDToken(c *gin.Context, deps *controller.Deps) {
	var req dto.IDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	session, err := deps.Auth.SignInWithIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		middleware.Logger(c).WithError(err).Info("ID token sign-in rejected")
		controller.RespondError(c, err)
		return
	}
	respondSignedIn(c, deps, session)
}
