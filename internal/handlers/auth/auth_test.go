package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/memory"
	"gitlab.com/codejudge.net/internal/config"
	authsvc "gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers/auth"
)

func newRouter(t *testing.T, withGoogle bool) (*mux.Router, *memory.UserStore) {
	t.Helper()
	users := memory.NewUserStore()
	jwtService := crypto.NewJWTService(&config.JwtConfig{Secret: "auth-handler"})

	ctx := context.Background()
	hash, err := jwtService.EncryptPassword(ctx, "s3cret")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &domain.Users{
		ID:           uuid.New(),
		UserName:     "alice",
		PasswordHash: &hash,
		AuthProvider: string(domain.ProviderLocal),
	}))

	ggCfg := &config.GGAuthConfig{ClientID: "client", ClientSecret: "secret", RedirectURL: "http://localhost/auth/callback"}
	deps := &auth.ServiceDependencies{LocalAuthService: authsvc.NewLocalAuthService(users, jwtService)}
	if withGoogle {
		deps.GGAuthService = authsvc.NewGoogleAuthService(users, jwtService, ggCfg)
	}

	r := mux.NewRouter()
	auth.NewHandler(ggCfg, logging.FromZap(zaptest.NewLogger(t))).RegisterRoutes(r, deps)
	return r, users
}

func login(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLocalLogin(t *testing.T) {
	r, _ := newRouter(t, false)

	rec := login(r, `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	rec = login(r, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = login(r, `{"username":"bob","password":"s3cret"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = login(r, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleRoutes(t *testing.T) {
	r, _ := newRouter(t, false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	r, _ = newRouter(t, true)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "client", loc.Query().Get("client_id"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookies[0].Value, loc.Query().Get("state"))
}

func TestGoogleCallbackChecksState(t *testing.T) {
	r, _ := newRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "other"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/auth/callback?state=abc", nil)
	req.AddCookie(&http.Cookie{Name: "oauthstate", Value: "abc"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
