package model

import "time"

const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"

	RoleHead     = "head"
	RoleEmployee = "employee"
)

type Employee struct {
	ID           string    `firestore:"id,omitempty" json:"id"`
	Email        string    `firestore:"email,omitempty" json:"email"`
	Password     string    `firestore:"password,omitempty" json:"-"`
	EmployeeName string    `firestore:"employeeName,omitempty" json:"employeeName"`
	Department   string    `firestore:"department,omitempty" json:"department"`
	Role         string    `firestore:"role,omitempty" json:"role"`     // "head" or "employee"
	Status       string    `firestore:"status,omitempty" json:"status"` // "active" or "inactive"
	CreatedAt    time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

func (e *Employee) DocID() string      { return e.ID }
func (e *Employee) SetDocID(id string) { e.ID = id }

// IsHead reports whether the employee leads their department.
func (e *Employee) IsHead() bool {
	return normalize(e.Role) == RoleHead
}

// IsInactive is true only for an explicit "inactive" status; records
// without a status predate the field and may sign in.
func (e *Employee) IsInactive() bool {
	return normalize(e.Status) == EmployeeInactive
}
