package dto

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ClientQuery struct {
	Stage      string `form:"stage"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	AssignedTo string `form:"assignedTo"`
	Page       int    `form:"page" binding:"omitempty,min=1,max=100000"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
}

type ReportQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx pdf"`
}
