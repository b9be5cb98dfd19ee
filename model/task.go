package model

import (
	"strings"
	"time"
)

const (
	StatusPending              = "pending"
	StatusApproved             = "approved"
	StatusRejected             = "rejected"
	StatusAssignedToDepartment = "assigned-to-department"
	StatusInProgress           = "in-progress"
	StatusCompleted            = "completed"
	StatusPosted               = "posted"
)

var TaskStatuses = []string{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusAssignedToDepartment,
	StatusInProgress,
	StatusCompleted,
	StatusPosted,
}

type Task struct {
	ID          string    `firestore:"id,omitempty" json:"id"`
	TaskName    string    `firestore:"taskName,omitempty" json:"taskName"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	ClientID    string    `firestore:"clientId,omitempty" json:"clientId,omitempty"`
	ClientName  string    `firestore:"clientName,omitempty" json:"clientName,omitempty"`
	Department  string    `firestore:"department,omitempty" json:"department,omitempty"`
	Status      string    `firestore:"status,omitempty" json:"status"`
	PostDate    string    `firestore:"postDate,omitempty" json:"postDate,omitempty"`
	Deadline    string    `firestore:"deadline,omitempty" json:"deadline,omitempty"`
	AssignedTo  string    `firestore:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedBy   string    `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
	Deleted     bool      `firestore:"deleted,omitempty" json:"-"`
	CreatedAt   time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

func (t *Task) DocID() string      { return t.ID }
func (t *Task) SetDocID(id string) { t.ID = id }

// IsDone reports whether the task reached a terminal status.
func (t *Task) IsDone() bool {
	status, _ := CanonicalStatus(t.Status)
	return status == StatusCompleted || status == StatusPosted
}

// CanonicalStatus maps a loosely typed status onto a known value.
func CanonicalStatus(status string) (string, bool) {
	s := strings.NewReplacer(" ", "-", "_", "-").Replace(normalize(status))
	for _, known := range TaskStatuses {
		if known == s {
			return known, true
		}
	}
	return "", false
}
