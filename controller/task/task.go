package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/services"
)

func TaskController(router *gin.Engine, deps *controller.Deps) {
	routes := router.Group("/tasks", deps.Authenticated()...)
	{
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, deps)
		})
		routes.POST("", func(c *gin.Context) {
			CreateTask(c, deps)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetTask(c, deps)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateTask(c, deps)
		})
		routes.PUT("/:id/status", func(c *gin.Context) {
			UpdateStatus(c, deps)
		})
		routes.PUT("/:id/assign", func(c *gin.Context) {
			AssignTask(c, deps)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, deps)
		})
	}
}

// ListTasks returns the caller's tasks, either flat or grouped by client.
// Grouped listings paginate over groups.
func ListTasks(c *gin.Context, deps *controller.Deps) {
	var query dto.TaskQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	tasks, err := deps.Tasks.List(ctx, controller.Session(c), services.TaskFilterFromQuery(query))
	if err != nil {
		controller.RespondError(c, err)
		return
	}

	if query.Group != "client" {
		page, pagination := services.Paginate(tasks, query.Page, query.PageSize)
		c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: page, Pagination: pagination})
		return
	}

	clients, err := deps.Tasks.Clients(ctx)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	groups, pagination := services.Paginate(services.GroupTasksByClient(tasks, clients), query.Page, query.PageSize)
	c.JSON(http.StatusOK, dto.TaskListResponse{Groups: groups, Pagination: pagination})
}

func CreateTask(c *gin.Context, deps *controller.Deps) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	task, err := deps.Tasks.Create(c.Request.Context(), controller.Session(c), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("task", task.ID).Info("task created")
	c.JSON(http.StatusCreated, task)
}

func GetTask(c *gin.Context, deps *controller.Deps) {
	task, err := deps.Tasks.Get(c.Request.Context(), controller.Session(c), c.Param("id"))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func UpdateTask(c *gin.Context, deps *controller.Deps) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	task, err := deps.Tasks.Edit(c.Request.Context(), controller.Session(c), c.Param("id"), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func UpdateStatus(c *gin.Context, deps *controller.Deps) {
	var req dto.TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	task, err := deps.Tasks.SetStatus(c.Request.Context(), controller.Session(c), c.Param("id"), req.Status)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func AssignTask(c *gin.Context, deps *controller.Deps) {
	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	task, err := deps.Tasks.Assign(c.Request.Context(), controller.Session(c), c.Param("id"), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func DeleteTask(c *gin.Context, deps *controller.Deps) {
	if err := deps.Tasks.Delete(c.Request.Context(), controller.Session(c), c.Param("id")); err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("task", c.Param("id")).Info("task deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
