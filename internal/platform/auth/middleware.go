package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const sessionKey contextKey = "session"

// CookieName is the cookie the backend's auth client stores the access
// token in.
const CookieName = "sb-access-token"

// Portal roles, as recorded on the profiles table.
const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
	RoleAdmin        = "admin"
)

// Claims is the access token issued by the backend's auth service.
type Claims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

type AppMetadata struct {
	Provider   string `json:"provider,omitempty"`
	PortalRole string `json:"portal_role,omitempty"`
}

// Session is the signed-in user for a request. AccessToken is forwarded to
// the backend so its row-level policies see the same user.
type Session struct {
	UserID      string
	Email       string
	Role        string
	AccessToken string
}

type SessionConfig struct {
	Secret []byte
	// Dev admits requests without a token as DevSession.
	Dev bool
}

// DevSession is the session assumed for anonymous requests in development.
var DevSession = Session{UserID: "dev-user", Email: "john.perera@gmail.com", Role: RolePatient}

// SessionMiddleware verifies the access token from the session cookie or a
// Bearer header and stores the session on the request context. Public paths
// pass through without one.
func SessionMiddleware(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Skipper(c) {
				return next(c)
			}
			tokenStr, err := tokenFrom(c.Request())
			if err != nil {
				return err
			}
			if tokenStr == "" {
				if cfg.Dev {
					s := DevSession
					return next(withSession(c, &s))
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			if len(cfg.Secret) == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "session verification is not configured")
			}

			s, err := ParseToken(tokenStr, cfg.Secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			return next(withSession(c, s))
		}
	}
}

// ParseToken verifies an HS256 access token and returns its session.
func ParseToken(tokenStr string, secret []byte) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	role := claims.AppMetadata.PortalRole
	if role == "" {
		role = RolePatient
	}
	return &Session{UserID: claims.Subject, Email: claims.Email, Role: role, AccessToken: tokenStr}, nil
}

func tokenFrom(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if ck, err := r.Cookie(CookieName); err == nil {
		return ck.Value, nil
	}
	return "", nil
}

func withSession(c echo.Context, s *Session) echo.Context {
	c.Set(string(sessionKey), s)
	c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), s)))
	return c
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

func UserIDFromContext(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok {
		return s.UserID
	}
	return ""
}
