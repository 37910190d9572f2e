package delivery

import (
	"net/http"
	"strings"
	"time"

	"rentit-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieHelper manages authentication cookies.
type CookieHelper struct {
	secure   bool
	domain   string
	sameSite http.SameSite
}

// NewCookieHelper creates a new cookie helper with the given configuration.
func NewCookieHelper(cfg config.Cookie) *CookieHelper {
	return &CookieHelper{
		secure:   cfg.Secure,
		domain:   cfg.Domain,
		sameSite: parseSameSite(cfg.SameSite, cfg.Secure),
	}
}

// SetAuthCookies sets both access and refresh token cookies.
func (h *CookieHelper) SetAuthCookies(c *gin.Context, accessToken, refreshToken string, accessExpiry, refreshExpiry time.Duration) {
	h.setCookie(c, AccessTokenCookie, accessToken, int(accessExpiry.Seconds()))
	h.setCookie(c, RefreshTokenCookie, refreshToken, int(refreshExpiry.Seconds()))
}

// ClearAuthCookies removes both authentication cookies.
func (h *CookieHelper) ClearAuthCookies(c *gin.Context) {
	h.setCookie(c, AccessTokenCookie, "", -1)
	h.setCookie(c, RefreshTokenCookie, "", -1)
}

func (h *CookieHelper) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(h.sameSite)
	c.SetCookie(name, value, maxAge, "/", h.domain, h.secure, true)
}

// parseSameSite maps the configured value. An empty value means None for
// secure cookies and Lax otherwise.
func parseSameSite(value string, secure bool) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	}
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func cookieValue(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}
