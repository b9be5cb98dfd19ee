package employee

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agencydash/controller"
	"agencydash/dto"
	"agencydash/middleware"
	"agencydash/model"
	"agencydash/services"
)

func EmployeeController(router *gin.Engine, deps *controller.Deps) {
	admin := router.Group("/admin/employees", deps.Authenticated(model.DashboardSuperAdmin)...)
	{
		admin.GET("", func(c *gin.Context) {
			ListEmployees(c, deps)
		})
		admin.POST("", func(c *gin.Context) {
			CreateEmployee(c, deps)
		})
		admin.PUT("/:id", func(c *gin.Context) {
			UpdateEmployee(c, deps)
		})
		admin.DELETE("/:id", func(c *gin.Context) {
			DeactivateEmployee(c, deps)
		})
	}

	router.GET("/employees", append(deps.Authenticated(), func(c *gin.Context) {
		AssignableEmployees(c, deps)
	})...)
}

func ListEmployees(c *gin.Context, deps *controller.Deps) {
	var query dto.EmployeeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	employees, err := deps.Employees.List(c.Request.Context(), query)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// AssignableEmployees feeds assignment pickers. Department heads only see
// their own department.
func AssignableEmployees(c *gin.Context, deps *controller.Deps) {
	session := controller.Session(c)
	department := c.Query("department")

	switch session.Dashboard {
	case model.DashboardSuperAdmin, model.DashboardProductionIncharge:
	default:
		own := session.Dashboard.Department()
		if !session.IsHead() || own == "" {
			controller.RespondError(c, services.ErrForbidden)
			return
		}
		department = own
	}

	employees, err := deps.Employees.Assignable(c.Request.Context(), department)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func CreateEmployee(c *gin.Context, deps *controller.Deps) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	emp, err := deps.Employees.Create(c.Request.Context(), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("employee", emp.Email).Info("employee created")
	c.JSON(http.StatusCreated, emp)
}

func UpdateEmployee(c *gin.Context, deps *controller.Deps) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(c, err)
		return
	}
	emp, err := deps.Employees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func DeactivateEmployee(c *gin.Context, deps *controller.Deps) {
	if err := deps.Employees.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		controller.RespondError(c, err)
		return
	}
	middleware.Logger(c).WithField("employee", c.Param("id")).Info("employee deactivated")
	c.JSON(http.StatusOK, gin.H{"message": "Employee deactivated"})
}
