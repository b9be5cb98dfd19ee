package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencydash/config"
	"agencydash/dto"
	"agencydash/model"
	"agencydash/repository"
)

type fakeIDTokens struct {
	claims map[string]interface{}
	err    error
}

func (f fakeIDTokens) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: "uid-1", Claims: f.claims}, nil
}

type fakeCaptcha struct {
	err  error
	seen []CaptchaAssessment
}

func (f *fakeCaptcha) Verify(_ context.Context, a CaptchaAssessment) (*dto.AssessmentResult, error) {
	f.seen = append(f.seen, a)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AssessmentResult{Score: 0.9, Action: a.Action}, nil
}

func newAuthFixture(t *testing.T, opts ...AuthOption) (*AuthService, *repository.Store) {
	t.Helper()
	store := repository.NewMemoryStore()
	guard := NewLoginGuard(store.LoginGuard, config.LoginGuardOptions{
		MaxFailures:   3,
		FailureWindow: 15 * time.Minute,
		BlockDuration: 30 * time.Minute,
	})
	guard.now = clock
	tokens := NewTokenService(testJWT())
	tokens.now = clock
	overrides := map[string]model.Dashboard{"boss@agency.test": model.DashboardSuperAdmin}

	svc := NewAuthService(store.Employees, guard, tokens, overrides, opts...)
	svc.now = clock
	return svc, store
}

func TestAuthService_SignIn(t *testing.T) {
	svc, store := newAuthFixture(t)
	hashed, err := HashPassword("pw-123456")
	require.NoError(t, err)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "sam@agency.test", Password: hashed, EmployeeName: "Sam", Department: "Strategy", Role: "Head"})

	session, err := svc.SignIn(context.Background(), SignInInput{Email: " Sam@Agency.test ", Password: "pw-123456"})
	require.NoError(t, err)
	assert.Equal(t, model.DashboardStrategyHead, session.Dashboard)
	assert.Equal(t, model.RoleHead, session.Role)
	assert.Equal(t, "Sam", session.Name)
	assert.Equal(t, "/strategy-head", session.Dashboard.Path())

	pair, err := svc.IssueTokens(session)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session, refreshed)
}

func TestAuthService_SignIn_UpgradesLegacyPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "vic@agency.test", Password: "plain-pw", Department: "Video"})

	session, err := svc.SignIn(context.Background(), SignInInput{Email: "vic@agency.test", Password: "plain-pw"})
	require.NoError(t, err)
	assert.Equal(t, model.DashboardVideo, session.Dashboard)

	emp, err := store.Employees.Get(context.Background(), "e1")
	require.NoError(t, err)
	assert.True(t, IsPasswordHashed(emp.Password))

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "vic@agency.test", Password: "plain-pw"})
	assert.NoError(t, err)
}

func TestAuthService_SignIn_Rejections(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "old@agency.test", Password: "pw", Department: "Graphics", Status: "Inactive"})
	seedEmployee(t, store, model.Employee{ID: "e2", Email: "fin@agency.test", Password: "pw", Department: "Finance"})

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "old@agency.test", Password: "pw"})
	assert.ErrorIs(t, err, ErrAccountInactive)

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "old@agency.test", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "ghost@agency.test", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(context.Background(), SignInInput{Email: "fin@agency.test", Password: "pw"})
	assert.ErrorIs(t, err, ErrUnknownDepartment)
}

func TestAuthService_SignIn_BlocksAfterRepeatedFailures(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "gia@agency.test", Password: "right", Department: "Graphics"})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "wrong"})
	require.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "right"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	svc.guard.now = func() time.Time { return fixedNow.Add(31 * time.Minute) }
	_, err = svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "right"})
	assert.NoError(t, err)
}

func TestAuthService_SignIn_SuccessClearsFailures(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "gia@agency.test", Password: "right", Department: "Graphics"})
	ctx := context.Background()

	for round := 0; round < 2; round++ {
		for i := 0; i < 2; i++ {
			_, err := svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "wrong"})
			require.ErrorIs(t, err, ErrInvalidCredentials)
		}
		_, err := svc.SignIn(ctx, SignInInput{Email: "gia@agency.test", Password: "right"})
		require.NoError(t, err)
	}
}

func TestAuthService_SignIn_Captcha(t *testing.T) {
	captcha := &fakeCaptcha{err: ErrCaptchaRejected}
	svc, store := newAuthFixture(t, WithCaptcha(captcha))
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "sol@agency.test", Password: "pw", Department: "Social Media"})

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "sol@agency.test", Password: "pw", CaptchaToken: "tok", UserIP: "10.0.0.1"})
	assert.ErrorIs(t, err, ErrCaptchaRejected)
	require.Len(t, captcha.seen, 1)
	assert.Equal(t, "login", captcha.seen[0].Action)
	assert.Equal(t, "10.0.0.1", captcha.seen[0].UserIP)

	captcha.err = nil
	session, err := svc.SignIn(context.Background(), SignInInput{Email: "sol@agency.test", Password: "pw", CaptchaToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, model.DashboardSocialMedia, session.Dashboard)
}

func TestAuthService_SignInWithIDToken(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		svc, _ := newAuthFixture(t)
		_, err := svc.SignInWithIDToken(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrAuthUnavailable)
	})

	t.Run("override without employee record", func(t *testing.T) {
		svc, _ := newAuthFixture(t, WithIDTokenVerifier(fakeIDTokens{claims: map[string]interface{}{"email": "Boss@agency.test", "name": "Boss"}}))
		session, err := svc.SignInWithIDToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, model.DashboardSuperAdmin, session.Dashboard)
		assert.Equal(t, "boss@agency.test", session.Email)
		assert.Equal(t, "Boss", session.Name)
	})

	t.Run("employee record", func(t *testing.T) {
		svc, store := newAuthFixture(t, WithIDTokenVerifier(fakeIDTokens{claims: map[string]interface{}{"email": "vic@agency.test"}}))
		seedEmployee(t, store, model.Employee{ID: "e1", Email: "vic@agency.test", Department: "Video"})
		session, err := svc.SignInWithIDToken(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, model.DashboardVideo, session.Dashboard)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newAuthFixture(t, WithIDTokenVerifier(fakeIDTokens{claims: map[string]interface{}{"email": "who@agency.test"}}))
		_, err := svc.SignInWithIDToken(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("bad token", func(t *testing.T) {
		svc, _ := newAuthFixture(t, WithIDTokenVerifier(fakeIDTokens{err: errors.New("expired")}))
		_, err := svc.SignInWithIDToken(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no email claim", func(t *testing.T) {
		svc, _ := newAuthFixture(t, WithIDTokenVerifier(fakeIDTokens{claims: map[string]interface{}{}}))
		_, err := svc.SignInWithIDToken(context.Background(), "tok")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_RefreshSeesDeactivation(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedEmployee(t, store, model.Employee{ID: "e1", Email: "gia@agency.test", Password: "pw", Department: "Graphics"})

	session, err := svc.SignIn(context.Background(), SignInInput{Email: "gia@agency.test", Password: "pw"})
	require.NoError(t, err)
	pair, err := svc.IssueTokens(session)
	require.NoError(t, err)

	_, err = store.Employees.Update(context.Background(), "e1", func(e *model.Employee) error {
		e.Status = model.EmployeeInactive
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrAccountInactive)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
