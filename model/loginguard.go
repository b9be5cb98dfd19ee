package model

import "time"

// LoginFailure is one rejected sign-in for an email.
type LoginFailure struct {
	Email     string    `firestore:"email"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// LoginBlock locks an email out of the login gate until ExpiresAt.
type LoginBlock struct {
	Email     string    `firestore:"email"`
	Reason    string    `firestore:"reason,omitempty"`
	CreatedAt time.Time `firestore:"createdAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}
