// Package controller holds what the route controllers share: their
// dependencies and the mapping from service errors to HTTP responses.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/middleware"
	"agencydash/model"
	"agencydash/report"
	"agencydash/services"
)

type Deps struct {
	Tokens    *services.TokenService
	Auth      *services.AuthService
	Captcha   services.CaptchaVerifier
	Tasks     *services.TaskService
	Clients   *services.ClientService
	Employees *services.EmployeeService
	Dashboard *services.DashboardService
	Reports   *report.Renderer

	// AuthLimit guards the /auth routes; nil disables it.
	AuthLimit gin.HandlerFunc
}

// Authenticated returns the access-token middleware followed by an
// optional dashboard restriction.
func (d *Deps) Authenticated(dashboards ...model.Dashboard) []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{middleware.AccessTokenMiddleware(d.Tokens)}
	if len(dashboards) > 0 {
		handlers = append(handlers, middleware.RequireDashboard(dashboards...))
	}
	return handlers
}

func (d *Deps) AuthHandlers() []gin.HandlerFunc {
	if d.AuthLimit == nil {
		return nil
	}
	return []gin.HandlerFunc{d.AuthLimit}
}

var statusByError = []struct {
	err    error
	status int
}{
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrInvalidToken, http.StatusUnauthorized},
	{services.ErrAccountInactive, http.StatusForbidden},
	{services.ErrUnknownDepartment, http.StatusForbidden},
	{services.ErrCaptchaRejected, http.StatusForbidden},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrForbiddenStatus, http.StatusForbidden},
	{services.ErrTooManyAttempts, http.StatusTooManyRequests},
	{services.ErrTaskNotFound, http.StatusNotFound},
	{services.ErrClientNotFound, http.StatusNotFound},
	{services.ErrEmployeeNotFound, http.StatusNotFound},
	{services.ErrClientExists, http.StatusConflict},
	{services.ErrEmailTaken, http.StatusConflict},
	{services.ErrStageBackwards, http.StatusUnprocessableEntity},
	{services.ErrUnknownStage, http.StatusBadRequest},
	{services.ErrInvalidAssignee, http.StatusBadRequest},
	{services.ErrNotStrategy, http.StatusBadRequest},
	{services.ErrAuthUnavailable, http.StatusServiceUnavailable},
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// RespondError answers with the status for err. Internal errors are logged
// and their details kept out of the response.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		middleware.Logger(c).WithError(err).Error("request failed")
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	body := gin.H{"error": err.Error()}
	if status == http.StatusUnauthorized {
		body["redirect"] = model.LoginPath
	}
	c.JSON(status, body)
}

func RespondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// Session returns the caller's session. Routes using it sit behind
// Authenticated.
func Session(c *gin.Context) model.Session {
	s, _ := middleware.SessionFrom(c)
	return s
}
