package dto

import "agencydash/model"

type CreateClientRequest struct {
	ClientID      string `json:"clientId"`
	ClientName    string `json:"clientName" binding:"required,max=200"`
	ContactPerson string `json:"contactPerson" binding:"max=200"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address" binding:"max=500"`
	Stage         string `json:"stage" binding:"omitempty,stage"`
}

// UpdateClientRequest carries only the fields to change.
type UpdateClientRequest struct {
	ClientName         *string `json:"clientName" binding:"omitempty,min=1,max=200"`
	ContactPerson      *string `json:"contactPerson" binding:"omitempty,max=200"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone" binding:"omitempty,max=50"`
	Address            *string `json:"address" binding:"omitempty,max=500"`
	AssignedToEmployee *string `json:"assignedToEmployee" binding:"omitempty,email"`
	Stage              *string `json:"stage" binding:"omitempty,stage"`
	Status             *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type AssignClientRequest struct {
	EmployeeEmail string `json:"employeeEmail" binding:"required,email"`
}

type StageRequest struct {
	Stage string `json:"stage" binding:"required,stage"`
}

type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type ClientListResponse struct {
	Clients    []model.Client `json:"clients"`
	Stages     []StageCount   `json:"stages"`
	Pagination Pagination     `json:"pagination"`
}
