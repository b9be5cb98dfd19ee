package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/model"
	"agencydash/services"
)

func SignInController(router *gin.Engine, deps *controller.Deps) {
	routes := router.Group("/auth", deps.AuthHandlers()...)
	{
		routes.POST("/signin", func(c *gin.Context) {
			Signin(c, deps)
		})
	}
}

func Signin(c *gin.Context, deps *controller.Deps) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	session, err := deps.Auth.SignIn(c.Request.Context(), services.SignInInput{
		Email:        request.Email,
		Password:     request.Password,
		CaptchaToken: request.CaptchaToken,
		UserIP:       c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		middleware.Logger(c).WithError(err).WithField("email", request.Email).Info("sign-in rejected")
		controller.RespondError(c, err)
		return
	}
	respondSignedIn(c, deps, session)
}

// respondSignedIn issues tokens for session and tells the client where
// to go next.
func respondSignedIn(c *gin.Context, deps *controller.Deps, session *model.Session) {
	pair, err := deps.Auth.IssueTokens(session)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithFields(logrus.Fields{
		"email":     session.Email,
		"dashboard": session.Dashboard,
	}).Info("signed in")

	c.JSON(http.StatusOK, dto.SigninResponse{
		Message:  "Login successful",
		Token:    *pair,
		Session:  *session,
		Redirect: session.Dashboard.Path(),
	})
}
