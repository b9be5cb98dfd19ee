package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
)

func DashboardController(router *gin.Engine, deps *controller.Deps) {
	router.GET("/dashboard", append(deps.Authenticated(), func(c *gin.Context) {
		Summary(c, deps)
	})...)
}

func Summary(c *gin.Context, deps *controller.Deps) {
	var query dto.TaskQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	summary, err := deps.Dashboard.Summary(c.Request.Context(), controller.Session(c), query)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
