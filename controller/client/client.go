package client

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/model"
	"agencydash/services"
)

func ClientController(router *gin.Engine, deps *controller.Deps) {
	admin := router.Group("/admin/clients", deps.Authenticated(model.DashboardSuperAdmin)...)
	{
		admin.GET("", func(c *gin.Context) {
			listClients(c, deps.Clients.List)
		})
		admin.POST("", func(c *gin.Context) {
			CreateClient(c, deps)
		})
		admin.GET("/:id", func(c *gin.Context) {
			GetClient(c, deps)
		})
		admin.PUT("/:id", func(c *gin.Context) {
			UpdateClient(c, deps)
		})
		admin.DELETE("/:id", func(c *gin.Context) {
			DeleteClient(c, deps)
		})
		admin.POST("/:id/forward", func(c *gin.Context) {
			ForwardClient(c, deps)
		})
	}

	head := router.Group("/strategy-head/clients", deps.Authenticated(model.DashboardStrategyHead)...)
	{
		head.GET("", func(c *gin.Context) {
			listClients(c, deps.Clients.HeadClients)
		})
		head.POST("/:id/assign", func(c *gin.Context) {
			AssignClient(c, deps)
		})
	}

	strategy := router.Group("/strategy/clients", deps.Authenticated(model.DashboardStrategyEmployee)...)
	{
		strategy.GET("", func(c *gin.Context) {
			session := controller.Session(c)
			listClients(c, func(ctx context.Context, f services.ClientFilter) ([]model.Client, error) {
				return deps.Clients.EmployeeClients(ctx, session, f)
			})
		})
		strategy.PUT("/:id/stage", func(c *gin.Context) {
			AdvanceStage(c, deps)
		})
	}
}

// listClients answers a filtered, paginated listing. Stage cards count the
// whole listing, not just the filtered rows.
func listClients(c *gin.Context, fetch func(context.Context, services.ClientFilter) ([]model.Client, error)) {
	var query dto.ClientQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}

	all, err := fetch(c.Request.Context(), services.ClientFilter{})
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	filtered := services.FilterClients(all, services.ClientFilterFromQuery(query))
	clients, page := services.Paginate(filtered, query.Page, query.PageSize)

	c.JSON(http.StatusOK, dto.ClientListResponse{
		Clients:    clients,
		Stages:     services.StageCounts(all),
		Pagination: page,
	})
}

func CreateClient(c *gin.Context, deps *controller.Deps) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	client, err := deps.Clients.Create(c.Request.Context(), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("client", client.ClientID).Info("client created")
	c.JSON(http.StatusCreated, client)
}

func GetClient(c *gin.Context, deps *controller.Deps) {
	client, err := deps.Clients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func UpdateClient(c *gin.Context, deps *controller.Deps) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	client, err := deps.Clients.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func DeleteClient(c *gin.Context, deps *controller.Deps) {
	if err := deps.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("client", c.Param("id")).Info("client deleted")
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

func ForwardClient(c *gin.Context, deps *controller.Deps) {
	client, err := deps.Clients.Forward(c.Request.Context(), c.Param("id"))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client forwarded to strategy", "client": client})
}

func AssignClient(c *gin.Context, deps *controller.Deps) {
	var req dto.AssignClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	client, err := deps.Clients.AssignToEmployee(c.Request.Context(), c.Param("id"), req.EmployeeEmail)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client assigned", "client": client})
}

func AdvanceStage(c *gin.Context, deps *controller.Deps) {
	var req dto.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	client, err := deps.Clients.AdvanceStage(c.Request.Context(), controller.Session(c), c.Param("id"), req.Stage)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}
