package crypto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ primary.JWTService = (*JWTServiceImpl)(nil)

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
)

const defaultTokenTTL = time.Hour

type JWTServiceImpl struct {
	HMACSecretKey string
	TokenTTL      time.Duration
}

func NewJWTService(jwtConfig *config.JwtConfig) primary.JWTService {
	return &JWTServiceImpl{
		HMACSecretKey: jwtConfig.Secret,
		TokenTTL:      defaultTokenTTL,
	}
}

func (J JWTServiceImpl) GenerateTokenHMAC(ctx context.Context, method string, claims map[string]interface{}) (string, error) {
	signingMethod := jwt.GetSigningMethod(method)
	if signingMethod == nil {
		return "", fmt.Errorf("unsupported signing method: %s", method)
	}
	if _, ok := signingMethod.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("not an HMAC signing method: %s", method)
	}

	// Ensure the claims map contains an expiration time
	if _, exists := claims["exp"]; !exists {
		ttl := J.TokenTTL
		if ttl <= 0 {
			ttl = defaultTokenTTL
		}
		claims["exp"] = time.Now().Add(ttl).Unix()
	}

	tok := jwt.NewWithClaims(signingMethod, jwt.MapClaims(claims))
	return tok.SignedString([]byte(J.HMACSecretKey))
}

func (J JWTServiceImpl) parse(token string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(J.HMACSecretKey), nil
	}, jwt.WithExpirationRequired())
}

func (J JWTServiceImpl) VerifyTokenHMAC(ctx context.Context, token string, method string) (bool, error) {
	if jwt.GetSigningMethod(method) == nil {
		return false, fmt.Errorf("unsupported signing method: %s", method)
	}
	parsedToken, err := J.parse(token)
	if err != nil {
		return false, err
	}
	return parsedToken.Valid, nil
}

// ParseTokenHMAC verifies the signature and expiry and returns the payload.
func (J JWTServiceImpl) ParseTokenHMAC(ctx context.Context, token string) (domain.AuthPayload, error) {
	parsedToken, err := J.parse(token)
	if err != nil {
		return domain.AuthPayload{}, errors.Join(ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return domain.AuthPayload{}, ErrInvalidToken
	}
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AuthPayload{}, ErrInvalidToken
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to encode claims: %w", err)
	}
	payload, err := J.DecryptAuthPayload(data)
	if err != nil {
		return domain.AuthPayload{}, err
	}
	if payload.UserID == "" {
		return domain.AuthPayload{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return payload, nil
}

func (JWTServiceImpl) VerifyPassword(ctx context.Context, passwordHash string, pwd string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pwd))
	if err != nil {
		return false, err
	}
	return true, nil
}

func (J JWTServiceImpl) EncryptPassword(ctx context.Context, password string) (string, error) {
	pwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func decodeSeg(signature string) (string, error) {
	sig, err := jwt.NewParser().DecodeSegment(signature)
	if err != nil {
		return "", err
	}
	return string(sig), nil
}

// DecodeTokenPayload reads the payload without verifying the signature.
func (J JWTServiceImpl) DecodeTokenPayload(ctx context.Context, token string) (domain.AuthPayload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.AuthPayload{}, fmt.Errorf("invalid token format")
	}

	payloadData, err := decodeSeg(parts[1])
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to decode token payload: %w", err)
	}

	authPayload, err := J.DecryptAuthPayload([]byte(payloadData))
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to parse AuthPayload: %w", err)
	}

	return authPayload, nil
}

func (J JWTServiceImpl) DecryptAuthPayload(data []byte) (domain.AuthPayload, error) {
	var authPayload domain.AuthPayload

	err := json.Unmarshal(data, &authPayload)
	if err != nil {
		return domain.AuthPayload{}, fmt.Errorf("failed to decrypt AuthPayload: %w", err)
	}

	return authPayload, nil
}
