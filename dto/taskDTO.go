package dto

import "agencydash/model"

type CreateTaskRequest struct {
	TaskName    string `json:"taskName" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	Department  string `json:"department"`
	PostDate    string `json:"postDate" binding:"omitempty,taskdate"`
	Deadline    string `json:"deadline" binding:"omitempty,taskdate"`
	AssignedTo  string `json:"assignedTo" binding:"omitempty,email"`
}

type UpdateTaskRequest struct {
	TaskName    *string `json:"taskName" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	ClientID    *string `json:"clientId"`
	ClientName  *string `json:"clientName"`
	PostDate    *string `json:"postDate" binding:"omitempty,taskdate"`
	Deadline    *string `json:"deadline" binding:"omitempty,taskdate"`
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,taskstatus"`
}

type AssignTaskRequest struct {
	Department string `json:"department"`
	AssignedTo string `json:"assignedTo" binding:"omitempty,email"`
}

// TaskQuery is the filter chain accepted by task listings and exports.
type TaskQuery struct {
	Month      string `form:"month"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	Department string `form:"department"`
	AssignedTo string `form:"assignedTo"`
	ClientID   string `form:"clientId"`
	Group      string `form:"group" binding:"omitempty,oneof=client"`
	Page       int    `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

type ClientTaskGroup struct {
	ClientName string       `json:"clientName"`
	ClientID   string       `json:"clientId,omitempty"`
	Tasks      []model.Task `json:"tasks"`
}

type TaskStats struct {
	Total              int            `json:"total"`
	ByStatus           map[string]int `json:"byStatus"`
	Overdue            int            `json:"overdue"`
	CompletedThisMonth int            `json:"completedThisMonth"`
}

type TaskListResponse struct {
	Tasks      []model.Task      `json:"tasks,omitempty"`
	Groups     []ClientTaskGroup `json:"groups,omitempty"`
	Pagination Pagination        `json:"pagination"`
}

type DashboardResponse struct {
	Session    model.Session     `json:"session"`
	Redirect   string            `json:"redirect"`
	Stats      TaskStats         `json:"stats"`
	Stages     []StageCount      `json:"stages,omitempty"`
	Groups     []ClientTaskGroup `json:"groups"`
	Pagination Pagination        `json:"pagination"`
}
