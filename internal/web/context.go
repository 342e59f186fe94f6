package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/civicdash/internal/config"
)

// BaseURLCookie holds a browser's backend override, set on the settings page.
const BaseURLCookie = "api_base_url"

// baseURLMaxAge is how long a saved override lasts.
const baseURLMaxAge = 365 * 24 * time.Hour

// BaseURL resolves the backend root for one request: the override cookie
// when it names an allowed backend, otherwise the configured default.
func BaseURL(r *http.Request, cfg config.BackendConfig) string {
	if u, ok := override(r, cfg); ok {
		return u
	}
	return config.NormalizeBaseURL(cfg.BaseURL)
}

// override returns the browser's saved override if cfg allows it.
func override(r *http.Request, cfg config.BackendConfig) (string, bool) {
	c, err := r.Cookie(BaseURLCookie)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" || cfg.AllowsBaseURL(v) != nil {
		return "", false
	}
	return config.NormalizeBaseURL(v), true
}

// setBaseURLCookie stores an override, or clears it when u is empty.
func setBaseURLCookie(w http.ResponseWriter, r *http.Request, u string) {
	c := &http.Cookie{
		Name:     BaseURLCookie,
		Value:    u,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(baseURLMaxAge / time.Second),
	}
	if u == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
