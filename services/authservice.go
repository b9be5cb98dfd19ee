package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/auth"
	"github.com/sirupsen/logrus"

	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTooManyAttempts    = errors.New("too many failed sign-ins, try again later")
	ErrAuthUnavailable    = errors.New("managed sign-in is not configured")
)

// IDTokenVerifier is satisfied by the Firebase Auth client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type SignInInput struct {
	Email        string
	Password     string
	CaptchaToken string
	UserIP       string
	UserAgent    string
}

type AuthService struct {
	employees repository.EmployeeRepository
	guard     *LoginGuard
	tokens    *TokenService
	overrides map[string]model.Dashboard
	idTokens  IDTokenVerifier
	captcha   CaptchaVerifier
	log       logrus.FieldLogger
	now       func() time.Time
}

type AuthOption func(*AuthService)

// WithIDTokenVerifier enables managed-auth sign-in.
func WithIDTokenVerifier(v IDTokenVerifier) AuthOption {
	return func(s *AuthService) { s.idTokens = v }
}

// WithCaptcha requires a passing captcha assessment on password sign-in.
func WithCaptcha(v CaptchaVerifier) AuthOption {
	return func(s *AuthService) { s.captcha = v }
}

func WithLogger(log logrus.FieldLogger) AuthOption {
	return func(s *AuthService) { s.log = log }
}

func NewAuthService(
	employees repository.EmployeeRepository,
	guard *LoginGuard,
	tokens *TokenService,
	overrides map[string]model.Dashboard,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		employees: employees,
		guard:     guard,
		tokens:    tokens,
		overrides: overrides,
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn checks employee credentials and returns the session to issue.
func (s *AuthService) SignIn(ctx context.Context, in SignInInput) (*model.Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	block, err := s.guard.Blocked(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check login block: %w", err)
	}
	if block != nil {
		return nil, ErrTooManyAttempts
	}

	if s.captcha != nil {
		if _, err := s.captcha.Verify(ctx, CaptchaAssessment{
			Token:     in.CaptchaToken,
			Action:    "login",
			UserIP:    in.UserIP,
			UserAgent: in.UserAgent,
		}); err != nil {
			return nil, err
		}
	}

	emp, err := s.employees.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.fail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}

	ok, legacy := CheckPassword(emp.Password, in.Password)
	if !ok {
		return nil, s.fail(ctx, email)
	}
	if emp.IsInactive() {
		return nil, ErrAccountInactive
	}

	if legacy {
		s.upgradePassword(ctx, emp.ID, in.Password)
	}
	if err := s.guard.Succeed(ctx, email); err != nil {
		return nil, fmt.Errorf("clear login failures: %w", err)
	}
	return s.sessionFor(emp)
}

func (s *AuthService) fail(ctx context.Context, email string) error {
	blocked, err := s.guard.Fail(ctx, email)
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if blocked {
		s.log.WithField("email", email).Warn("email blocked after repeated failed sign-ins")
		return ErrTooManyAttempts
	}
	return ErrInvalidCredentials
}

// upgradePassword replaces a plaintext password with its hash. Failure
// only costs another upgrade attempt on the next sign-in.
func (s *AuthService) upgradePassword(ctx context.Context, id, password string) {
	hashed, err := HashPassword(password)
	if err != nil {
		s.log.WithError(err).Error("hash legacy password")
		return
	}
	_, err = s.employees.Update(ctx, id, func(e *model.Employee) error {
		e.Password = hashed
		e.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		s.log.WithError(err).WithField("employee", id).Error("store upgraded password")
	}
}

// SignInWithIDToken accepts a managed-auth ID token. Override emails need
// no employee record; everyone else must have an active one.
func (s *AuthService) SignInWithIDToken(ctx context.Context, idToken string) (*model.Session, error) {
	if s.idTokens == nil {
		return nil, ErrAuthUnavailable
	}
	token, err := s.idTokens.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: token has no email", ErrInvalidToken)
	}
	name, _ := token.Claims["name"].(string)
	return s.resolve(ctx, email, name)
}

// Refresh re-resolves the session behind a refresh token so role or
// status changes apply without a new login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, claims.Email, "")
}

func (s *AuthService) resolve(ctx context.Context, email, name string) (*model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	emp, err := s.employees.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if emp.IsInactive() {
			return nil, ErrAccountInactive
		}
		return s.sessionFor(emp)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find employee: %w", err)
	}

	dashboard, ok := s.overrides[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return &model.Session{Email: email, Name: name, Dashboard: dashboard}, nil
}

func (s *AuthService) sessionFor(emp *model.Employee) (*model.Session, error) {
	dashboard, err := ResolveDashboard(emp, s.overrides)
	if err != nil {
		return nil, err
	}
	role := model.RoleEmployee
	if emp.IsHead() {
		role = model.RoleHead
	}
	return &model.Session{
		Email:      emp.Email,
		Name:       emp.EmployeeName,
		Department: emp.Department,
		Role:       role,
		Dashboard:  dashboard,
	}, nil
}

// IssueTokens signs the access/refresh pair for a session.
func (s *AuthService) IssueTokens(session *model.Session) (*dto.TokenPair, error) {
	access, err := s.tokens.CreateAccessToken(*session)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}
	refresh, err := s.tokens.CreateRefreshToken(session.Email)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
