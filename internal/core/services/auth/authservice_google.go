package auth

import (
	"context"
	"strings"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(userPort secondary.UserPort, jwtProvider primary.JWTService, Config *config.GGAuthConfig) IAuthService {
	return &googleAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
		Config:      Config,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// Login signs in a Google account, creating the user on first login.
func (g googleAuthService) Login(ctx context.Context, users *domain.Users) (string, error) {
	if users.GoogleID == nil {
		return "", errs.InvalidCredentials
	}

	if users.AuthProvider != string(domain.ProviderGoogle) {
		return "", errs.InvalidCredentials
	}

	if users.Email == nil {
		return "", errs.EmailRequired
	}

	if g.Config.ForceFPTDomain && !strings.HasSuffix(*users.Email, "@fpt.edu.vn") {
		return "", errs.ShouldUseFPTEmail
	}

	usr, err := g.userPort.GetByGoogleID(ctx, *users.GoogleID)
	if err != nil {
		return "", err
	}

	if usr != nil {
		return issueToken(ctx, g.jwtProvider, usr)
	}
	users.PasswordHash = nil
	users.UserName = strings.Split(*users.Email, "@")[0]
	users.AuthProvider = string(domain.ProviderGoogle)
	err = g.userPort.Create(ctx, users)
	if err != nil {
		return "", errs.FailedToCreateUser
	}

	return issueToken(ctx, g.jwtProvider, users)
}
