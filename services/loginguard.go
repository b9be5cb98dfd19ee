package services

import (
	"context"
	"time"

	"agencydash/config"
	"agencydash/model"
	"agencydash/repository"
)

// LoginGuard locks an email out after repeated failed sign-ins.
type LoginGuard struct {
	repo repository.LoginGuardRepository
	opts config.LoginGuardOptions
	now  func() time.Time
}

func NewLoginGuard(repo repository.LoginGuardRepository, opts config.LoginGuardOptions) *LoginGuard {
	return &LoginGuard{repo: repo, opts: opts, now: time.Now}
}

// Blocked returns the active block for email, if any.
func (g *LoginGuard) Blocked(ctx context.Context, email string) (*model.LoginBlock, error) {
	return g.repo.ActiveBlock(ctx, email, g.now())
}

// Fail records a rejected sign-in and blocks the email once the number of
// failures inside the window reaches the limit.
func (g *LoginGuard) Fail(ctx context.Context, email string) (bool, error) {
	now := g.now()
	failure := model.LoginFailure{
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(g.opts.FailureWindow),
	}
	if err := g.repo.RecordFailure(ctx, failure); err != nil {
		return false, err
	}

	count, err := g.repo.CountFailures(ctx, email, now)
	if err != nil {
		return false, err
	}
	if count < g.opts.MaxFailures {
		return false, nil
	}

	block := model.LoginBlock{
		Email:     email,
		Reason:    "too many failed sign-ins",
		CreatedAt: now,
		ExpiresAt: now.Add(g.opts.BlockDuration),
	}
	if err := g.repo.Block(ctx, block); err != nil {
		return false, err
	}
	return true, g.repo.Clear(ctx, email)
}

// Succeed forgets earlier failures for email.
func (g *LoginGuard) Succeed(ctx context.Context, email string) error {
	return g.repo.Clear(ctx, email)
}
