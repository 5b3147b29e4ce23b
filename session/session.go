package session

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultCookieName = "session"

// Manager is the session gate: one operator password, and a signed cookie
// carrying the id of the user the session is bound to.
type Manager struct {
	Password   string
	Secret     []byte
	TTL        time.Duration
	CookieName string
	Secure     bool
	SameSite   http.SameSite

	now func() time.Time
}

type claims struct {
	Authed bool `json:"authed"`
	jwt.RegisteredClaims
}

func NewManager(password, secret string, ttl time.Duration) *Manager {
	return &Manager{
		Password:   password,
		Secret:     []byte(secret),
		TTL:        ttl,
		CookieName: DefaultCookieName,
		SameSite:   http.SameSiteLaxMode,
		now:        time.Now,
	}
}

// ParseSameSite maps the config value to http.SameSite; unknown values fall back to Lax.
func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CheckPassword compares the trimmed candidate with the operator password.
func (m *Manager) CheckPassword(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || m.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(m.Password)) == 1
}

// Issue binds the response to userID by setting the session cookie.
func (m *Manager) Issue(c *gin.Context, userID int64) error {
	token, err := m.sign(userID)
	if err != nil {
		return err
	}
	m.setCookie(c, token, int(m.TTL.Seconds()))
	return nil
}

// Read returns the user id of a valid session.
func (m *Manager) Read(c *gin.Context) (int64, bool) {
	raw, err := c.Cookie(m.cookieName())
	if err != nil || raw == "" {
		return 0, false
	}
	return m.verify(raw)
}

// Clear expires the session cookie.
func (m *Manager) Clear(c *gin.Context) {
	m.setCookie(c, "", -1)
}

func (m *Manager) sign(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("invalid user id %d", userID)
	}
	now := m.clock()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Authed: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	})
	signed, err := tok.SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (m *Manager) verify(raw string) (int64, bool) {
	var cl claims
	token, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.clock),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || !cl.Authed {
		return 0, false
	}
	userID, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.cookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: m.SameSite,
	})
}

func (m *Manager) cookieName() string {
	if m.CookieName == "" {
		return DefaultCookieName
	}
	return m.CookieName
}

func (m *Manager) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
