package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/response"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	stateCookie       = "oauthstate"
)

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	oauthConfig     *oauth2.Config
	logger          primary.Logger
}

func NewHandler(cfg *config.GGAuthConfig, logger primary.Logger) *Handler {
	return &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// RegisterRoutes mounts local login, and the Google routes when a Google
// service is provided.
func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies) {
	h.providerHandler[domain.ProviderLocal] = svcDep.LocalAuthService
	router.HandleFunc("/auth/login", h.LocalLoginHandler).Methods("POST")

	if svcDep.GGAuthService != nil {
		h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
		router.HandleFunc("/auth/google", h.GoogleLoginHandler).Methods("GET")
		router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods("GET")
	}
}

// LocalLoginHandler exchanges a username/password pair for a token.
func (h *Handler) LocalLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	password := req.Password
	tokenStr, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), &domain.Users{
		UserName:     req.Username,
		PasswordHash: &password,
		AuthProvider: string(domain.ProviderLocal),
	})
	if err != nil {
		h.logger.Debug("Local login failed", "username", req.Username, "error", err)
		response.WriteErrorFrom(w, err)
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: tokenStr})
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
	})
	http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value != r.URL.Query().Get("state") {
		handlers.ResponseError(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		handlers.ResponseError(w, "No code in URL", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("Failed to exchange OAuth code", "error", err)
		handlers.ResponseError(w, "Failed to get token", http.StatusInternalServerError)
		return
	}
	resp, err := h.oauthConfig.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		h.logger.Error("Failed to get user info", "error", err)
		handlers.ResponseError(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		handlers.ResponseError(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	tokenStr, err := h.providerHandler[domain.ProviderGoogle].Login(ctx, &domain.Users{
		GoogleID:     &googleUser.ID,
		Email:        &googleUser.Email,
		AuthProvider: string(domain.ProviderGoogle),
	})
	if err != nil {
		response.WriteErrorFrom(w, err)
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: tokenStr})
}
