package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/model"
	"agencydash/report"
	"agencydash/services"
)

func ExportController(router *gin.Engine, deps *controller.Deps) {
	routes := router.Group("/reports", deps.Authenticated()...)
	{
		routes.GET("/tasks", func(c *gin.Context) {
			TaskReport(c, deps)
		})
	}

	admin := router.Group("/reports", deps.Authenticated(model.DashboardSuperAdmin)...)
	{
		admin.GET("/clients", func(c *gin.Context) {
			ClientReport(c, deps)
		})
		admin.GET("/employees", func(c *gin.Context) {
			EmployeeReport(c, deps)
		})
	}
}

// TaskReport exports the caller's tasks with the same filters as /tasks.
func TaskReport(c *gin.Context, deps *controller.Deps) {
	var query dto.TaskQuery
	var format dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	if err := c.ShouldBindQuery(&format); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	session := controller.Session(c)
	tasks, err := deps.Tasks.List(ctx, session, services.TaskFilterFromQuery(query))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	clients, err := deps.Tasks.Clients(ctx)
	if err != nil {
		controller.RespondError(c, err)
		return
	}

	title := "Tasks"
	if query.Month != "" {
		title = fmt.Sprintf("Tasks %s", query.Month)
	}
	send(c, deps.Reports, format.Format, report.Filename("tasks", query.Month, format.Format), services.TaskTable(title, tasks, clients))
}

func ClientReport(c *gin.Context, deps *controller.Deps) {
	var query dto.ClientQuery
	var format dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	if err := c.ShouldBindQuery(&format); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	clients, err := deps.Clients.List(c.Request.Context(), services.ClientFilterFromQuery(query))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	send(c, deps.Reports, format.Format, report.Filename("clients", query.Stage, format.Format), services.ClientTable("Clients", clients))
}

func EmployeeReport(c *gin.Context, deps *controller.Deps) {
	var query dto.EmployeeQuery
	var format dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	if err := c.ShouldBindQuery(&format); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	employees, err := deps.Employees.List(c.Request.Context(), query)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	send(c, deps.Reports, format.Format, report.Filename("employees", query.Department, format.Format), services.EmployeeTable("Employees", employees))
}

func send(c *gin.Context, reports *report.Renderer, format, filename string, table *report.Table) {
	write, contentType, err := reports.For(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, table); err != nil {
		middleware.Logger(c).WithError(err).WithField("file", filename).Error("render report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
