package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/services"
)

func CaptchaController(router *gin.Engine, deps *controller.Deps) {
	routes := router.Group("/auth", deps.AuthHandlers()...)
	{
		routes.POST("/captcha", func(c *gin.Context) {
			VerifyCaptcha(c, deps)
		})
	}
}

// VerifyCaptcha runs a standalone assessment so the login form can check
// a token before submitting credentials.
func VerifyCaptcha(c *gin.Context, deps *controller.Deps) {
	if deps.Captcha == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "reCAPTCHA is not configured"})
		return
	}

	var req dto.CaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.Action == "" {
		req.Action = "login"
	}

	result, err := deps.Captcha.Verify(c.Request.Context(), services.CaptchaAssessment{
		Token:     req.Token,
		Action:    req.Action,
		UserIP:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if errors.Is(err, services.ErrCaptchaRejected) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error(), "result": result})
		return
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Error("reCAPTCHA assessment")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "reCAPTCHA assessment failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
