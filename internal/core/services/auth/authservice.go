package auth

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/global/logger"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// PermissionSubmit lets a caller run and submit code
const PermissionSubmit = "judge.submit"

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, users *domain.Users) (string, error)
}

// issueToken signs an HMAC token whose subject is the user id.
func issueToken(ctx context.Context, jwtProvider primary.JWTService, user *domain.Users) (string, error) {
	authPayload := domain.AuthPayload{
		UserID:     user.ID.String(),
		Username:   user.UserName,
		Permission: []string{PermissionSubmit},
	}
	var buf bytes.Buffer

	err := json.NewEncoder(&buf).Encode(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &payload)
	if err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
