package dto

import "agencydash/model"

type SigninRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	CaptchaToken string `json:"captchaToken"`
}

type IDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type SigninResponse struct {
	Message  string        `json:"message"`
	Token    TokenPair     `json:"token"`
	Session  model.Session `json:"session"`
	Redirect string        `json:"redirect"`
}

type SessionResponse struct {
	model.Session
	Redirect string `json:"redirect"`
}

type CaptchaRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action"`
}

type AssessmentResult struct {
	Score   float32  `json:"score"`
	Action  string   `json:"action"`
	Reasons []string `json:"reasons,omitempty"`
}
