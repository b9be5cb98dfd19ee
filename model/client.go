package model

import "time"

// Client stages, in workflow order.
const (
	StageOnboarding = "Client Onboarding"
	StageStrategy   = "Strategy Planning"
	StageProduction = "Content Production"
	StageDelivery   = "Delivery"
)

var Stages = []string{StageOnboarding, StageStrategy, StageProduction, StageDelivery}

const (
	ClientActive   = "active"
	ClientInactive = "inactive"
)

type Client struct {
	ID                 string    `firestore:"id,omitempty" json:"id"`
	ClientID           string    `firestore:"clientId,omitempty" json:"clientId"`
	ClientName         string    `firestore:"clientName,omitempty" json:"clientName"`
	ContactPerson      string    `firestore:"contactPerson,omitempty" json:"contactPerson,omitempty"`
	Email              string    `firestore:"email,omitempty" json:"email,omitempty"`
	Phone              string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	Address            string    `firestore:"address,omitempty" json:"address,omitempty"`
	AssignedToEmployee string    `firestore:"assignedToEmployee,omitempty" json:"assignedToEmployee,omitempty"`
	Stage              string    `firestore:"stage,omitempty" json:"stage"`
	Status             string    `firestore:"status,omitempty" json:"status"`
	Deleted            bool      `firestore:"deleted,omitempty" json:"-"`
	CreatedAt          time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt          time.Time `firestore:"updatedAt,omitempty" json:"updatedAt"`
}

func (c *Client) DocID() string      { return c.ID }
func (c *Client) SetDocID(id string) { c.ID = id }

// StageIndex returns the position of stage in the workflow, or -1 when the
// label is not one of the known stages. Comparison ignores case and spacing.
func StageIndex(stage string) int {
	s := normalize(stage)
	for i, known := range Stages {
		if normalize(known) == s {
			return i
		}
	}
	return -1
}

// CanonicalStage maps a loosely typed label onto its canonical spelling.
func CanonicalStage(stage string) (string, bool) {
	i := StageIndex(stage)
	if i < 0 {
		return "", false
	}
	return Stages[i], true
}
