package dto

type CreateEmployeeRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	EmployeeName string `json:"employeeName" binding:"required,max=100"`
	Department   string `json:"department" binding:"required,max=100"`
	Role         string `json:"role" binding:"omitempty,oneof=head employee"`
}

type UpdateEmployeeRequest struct {
	EmployeeName *string `json:"employeeName" binding:"omitempty,min=2,max=100"`
	Department   *string `json:"department" binding:"omitempty,min=1,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=head employee"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Password     *string `json:"password" binding:"omitempty,min=6"`
}

type EmployeeQuery struct {
	Department string `form:"department"`
	Status     string `form:"status"`
	Search     string `form:"search"`
}
