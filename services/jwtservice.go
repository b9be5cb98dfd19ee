package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agencydash/config"
	"agencydash/model"
)

var ErrInvalidToken = errors.New("token is expired or invalid")

type TokenService struct {
	opts config.JWTOptions
	now  func() time.Time
}

func NewTokenService(opts config.JWTOptions) *TokenService {
	return &TokenService{opts: opts, now: time.Now}
}

func (s *TokenService) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		Issuer:    s.opts.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *TokenService) CreateAccessToken(session model.Session) (string, error) {
	claims := &model.AccessClaims{
		Session:          session,
		RegisteredClaims: s.registered(session.Email, s.opts.AccessTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.opts.Secret))
}

func (s *TokenService) CreateRefreshToken(email string) (string, error) {
	claims := &model.RefreshClaims{
		Email:            email,
		RegisteredClaims: s.registered(email, s.opts.RefreshTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.opts.RefreshSecret))
}

func (s *TokenService) ParseAccessToken(raw string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	if err := s.parse(raw, s.opts.Secret, claims); err != nil {
		return nil, err
	}
	if claims.Email == "" || !claims.Dashboard.Valid() {
		return nil, fmt.Errorf("%w: missing session claims", ErrInvalidToken)
	}
	return claims, nil
}

func (s *TokenService) ParseRefreshToken(raw string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	if err := s.parse(raw, s.opts.RefreshSecret, claims); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return claims, nil
}

func (s *TokenService) parse(raw, secret string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(s.opts.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
