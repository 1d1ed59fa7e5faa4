package config

import "os"

type GGAuthConfig struct {
	ForceFPTDomain bool
	ClientID       string
	ClientSecret   string
	RedirectURL    string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		ForceFPTDomain: getBoolEnv("FORCE_FPT_DOMAIN"),
		ClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:    getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8082/auth/callback"),
	}
}

// Enabled reports whether Google login is configured.
func (c *GGAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
